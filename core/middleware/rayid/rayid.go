package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LocalsKey is the fiber locals key under which the ray id is stored.
const LocalsKey = "ray_id"

// Header is the request/response header carrying the ray id.
const Header = "X-Ray-Id"

// New returns middleware that assigns each request a ray id. A caller-
// provided id is kept so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
