package providers

import (
	"github.com/samber/do/v2"

	"github.com/listenupapp/bookindex/internal/catalog"
	"github.com/listenupapp/bookindex/internal/loader"
	"github.com/listenupapp/bookindex/internal/logger"
	"github.com/listenupapp/bookindex/internal/validation"
)

// ProvideCatalog provides the catalog index.
func ProvideCatalog(i do.Injector) (*catalog.Index, error) {
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	return catalog.New(catalog.Options{
		Logger:    log.With("component", componentCatalog),
		Validator: v,
	}), nil
}

// ProvideLoader provides the seed file loader.
func ProvideLoader(i do.Injector) (*loader.Loader, error) {
	log := do.MustInvoke[*logger.Logger](i)
	v := do.MustInvoke[*validation.Validator](i)

	return loader.New(v, log.With("component", componentLoader)), nil
}
