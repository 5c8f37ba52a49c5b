package inspect

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dock/errors"
	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/observability"
)

// Register mounts the inspector routes on r.
func Register(r gin.IRouter, store *Store) {
	r.GET("/health", health(store))
	r.GET("/snapshot", withSnapshot(store, func(c *gin.Context, s lifecycle.Snapshot) {
		c.JSON(http.StatusOK, s)
	}))
	r.GET("/roles", withSnapshot(store, func(c *gin.Context, s lifecycle.Snapshot) {
		c.JSON(http.StatusOK, gin.H{"roles": s.Roles, "count": len(s.Roles)})
	}))
	r.GET("/roles/:role", withSnapshot(store, role))
	r.GET("/types", withSnapshot(store, func(c *gin.Context, s lifecycle.Snapshot) {
		c.JSON(http.StatusOK, gin.H{"types": s.Types, "count": len(s.Types)})
	}))
	r.GET("/issues", withSnapshot(store, func(c *gin.Context, s lifecycle.Snapshot) {
		issues := s.Issues
		if issues == nil {
			issues = []string{}
		}
		c.JSON(http.StatusOK, gin.H{"issues": issues, "count": len(issues)})
	}))
}

func health(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth("dock", "")
		sh.AddComponent(store.Health())

		status := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, sh)
	}
}

func withSnapshot(store *Store, fn func(*gin.Context, lifecycle.Snapshot)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := store.Snapshot()
		if !ok {
			fail(c, errors.InvalidState("inspect", "unpublished"))
			return
		}
		fn(c, s)
	}
}

func role(c *gin.Context, s lifecycle.Snapshot) {
	name := c.Param("role")
	for _, r := range s.Roles {
		if r.Role == name {
			c.JSON(http.StatusOK, r)
			return
		}
	}
	fail(c, errors.New(errors.ErrCodeUnknownRole,
		fmt.Sprintf("Role %s was never registered.", name),
		http.StatusNotFound,
	).WithDetail("role", name))
}

func fail(c *gin.Context, err *errors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
