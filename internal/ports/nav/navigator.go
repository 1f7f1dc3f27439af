package nav

import "sync"

// Rutas de la app a las que navegan las pantallas.
const (
	PathLogin          = "/auth"
	PathDashboard      = "/dashboard"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password"
	PathAdminCustomers = "/admin/customers"
)

type Navigator interface {
	Navigate(path string)
}

// Recorder guarda el último destino pedido. En HTTP se traduce a un redirect 303.
type Recorder struct {
	mu   sync.Mutex
	path string
	all  []string
}

func (r *Recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
	r.all = append(r.all, path)
}

// Target devuelve el último destino y si hubo alguno.
func (r *Recorder) Target() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path, r.path != ""
}

func (r *Recorder) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.all...)
}
