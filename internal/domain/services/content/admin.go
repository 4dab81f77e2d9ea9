package content

import "context"

// AdminService locates the administration area of the site.
type AdminService interface {
	AdminURL(ctx context.Context) (string, error)
}
