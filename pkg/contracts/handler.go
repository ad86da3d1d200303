package contracts

import "github.com/julienschmidt/httprouter"

// Handler mounts a group of routes on a router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
