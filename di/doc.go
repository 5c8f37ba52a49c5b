// Package di provides typed access to dock roles using Go generics.
//
// The role is the type parameter, so callers never build a reflect.Type by
// hand. Every function accepts a small interface that both
// *lifecycle.Controller and *registry.Registry satisfy.
//
//	log := di.MustGet[Logger](ctl)
//	sensors, err := di.GetAll[Sensor](ctl)
//	if cache, ok := di.TryGet[Cache](ctl); ok {
//	    cache.Warm()
//	}
package di
