// Package db selects the concrete store driver from the profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/internal/profile"
	"github.com/praka2hb/synergi/store"
	"github.com/praka2hb/synergi/store/db/postgres"
	"github.com/praka2hb/synergi/store/db/sqlite"
)

// NewDBDriver creates a db driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q: only 'sqlite' and 'postgres' are supported", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
