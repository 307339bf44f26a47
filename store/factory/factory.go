// Package factory implements a name -> driver-constructor registry, so a
// driver package can register itself from an init() function and the CLI
// can build a store.Driver purely from a configured name and parameter map.
//
// Grounded on registry/storage/driver/factory/factory.go.
package factory

import (
	"fmt"

	"github.com/rsbellis/kvfs/store"
)

// DriverFactory constructs a store.Driver from a parameter map. Each driver
// package implements one and registers it under a unique name in init().
type DriverFactory interface {
	Create(parameters map[string]interface{}) (store.Driver, error)
}

var driverFactories = make(map[string]DriverFactory)

// Register makes a driver factory available under name. It panics if name
// is already registered or factory is nil, since both indicate a
// programming error at link time, not a runtime condition.
func Register(name string, f DriverFactory) {
	if f == nil {
		panic("factory: nil DriverFactory for " + name)
	}
	if _, ok := driverFactories[name]; ok {
		panic("factory: driver already registered: " + name)
	}
	driverFactories[name] = f
}

// Create builds a store.Driver using the factory registered under name.
func Create(name string, parameters map[string]interface{}) (store.Driver, error) {
	f, ok := driverFactories[name]
	if !ok {
		return nil, InvalidDriverError{Name: name}
	}
	return f.Create(parameters)
}

// InvalidDriverError records an attempt to construct an unregistered
// driver.
type InvalidDriverError struct {
	Name string
}

func (e InvalidDriverError) Error() string {
	return fmt.Sprintf("factory: driver not registered: %s", e.Name)
}
