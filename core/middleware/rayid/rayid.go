package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the request id in requests and responses.
	Header = "X-Ray-ID"
	// LocalKey is the Fiber locals key holding the request id.
	LocalKey = "ray_id"
)

// New returns a middleware that tags each request with a ray id, reusing the
// caller's id when one is supplied.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}
