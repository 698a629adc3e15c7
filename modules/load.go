package modules

import (
	"github.com/iota-uz/refconsole/modules/logging"
	"github.com/iota-uz/refconsole/modules/partners"
	"github.com/iota-uz/refconsole/modules/tasktypes"
	"github.com/iota-uz/refconsole/modules/usergroups"
	"github.com/iota-uz/refconsole/pkg/application"
	"github.com/iota-uz/refconsole/pkg/configuration"
	"github.com/iota-uz/refconsole/pkg/refapi"
)

// BuiltInModules returns the console modules configured from conf. The
// logging module comes first so its audit subscribers see every event.
func BuiltInModules(conf *configuration.Configuration, client *refapi.Client) []application.Module {
	return []application.Module{
		logging.NewModule(&logging.ModuleOptions{
			Enabled:     conf.ActionLogEnabled,
			PageSize:    conf.PageSize,
			MaxPageSize: conf.MaxPageSize,
			Logger:      conf.Logger(),
		}),
		partners.NewModule(&partners.ModuleOptions{
			Client:      client,
			Path:        conf.Upstream.PartnersPath,
			PageSize:    conf.PageSize,
			MaxPageSize: conf.MaxPageSize,
		}),
		tasktypes.NewModule(&tasktypes.ModuleOptions{
			Client:      client,
			Path:        conf.Upstream.TaskTypesPath,
			PageSize:    conf.PageSize,
			MaxPageSize: conf.MaxPageSize,
		}),
		usergroups.NewModule(&usergroups.ModuleOptions{
			Client:         client,
			GroupsPath:     conf.Upstream.GroupsPath,
			UsersPath:      conf.Upstream.UsersPath,
			PageSize:       conf.PageSize,
			MaxPageSize:    conf.MaxPageSize,
			ListPageSize:   conf.Transfer.PageSize,
			DragThreshold:  conf.Transfer.DragThreshold,
			CandidateLimit: conf.Transfer.CandidateLimit,
			SessionTTL:     conf.Transfer.SessionTTL,
			Logger:         conf.Logger(),
		}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
