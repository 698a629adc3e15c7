package constants

import (
	"github.com/go-playground/validator/v10"
)

type ContextKey string

const (
	AppKey       ContextKey = "app"
	LoggerKey    ContextKey = "logger"
	RequestStart ContextKey = "requestStart"
	ParamsKey    ContextKey = "params"
	PoolKey      ContextKey = "pool"
	TxKey        ContextKey = "tx"
	LocalizerKey ContextKey = "localizer"
	LocaleKey    ContextKey = "locale"
)

const DateFormat = "2006-01-02"

var Validate = validator.New(validator.WithRequiredStructEnabled())
