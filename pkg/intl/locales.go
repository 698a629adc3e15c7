package intl

import "embed"

// LocaleFiles holds the messages shared by every module.
//
//go:embed locales/*.json
var LocaleFiles embed.FS
