// Package routing decide, antes de cualquier handler, si una petición se reescribe al
// espacio de un subdominio de tenant, se redirige al login canónico o sigue su curso.
// Es puro: no hace I/O y depende solo de host, path, query, configuración y estado de auth.
package routing

import (
	"fmt"
	"regexp"
	"strings"
)

// Action resultado de la decisión.
type Action int

const (
	// ActionNext la petición sigue sin modificaciones.
	ActionNext Action = iota
	// ActionRewrite la petición se enruta internamente a Decision.Path.
	ActionRewrite
	// ActionRedirect se responde con una redirección a Decision.Path.
	ActionRedirect
	// ActionChallenge ruta protegida sin identidad: la capa de auth debe desafiar.
	ActionChallenge
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionRewrite:
		return "rewrite"
	case ActionRedirect:
		return "redirect"
	case ActionChallenge:
		return "challenge"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Rutas canónicas.
const (
	SignInPath       = "/sign-in"
	SignUpPath       = "/sign-up"
	AgencySignInPath = "/agency/sign-in"
	SitePath         = "/site"
	AgencyPrefix     = "/agency"
	SubAccountPrefix = "/subaccount"
)

// Request entradas de la decisión.
type Request struct {
	Host          string
	Path          string
	RawQuery      string // sin '?'
	Authenticated bool
}

// PathWithQuery devuelve "{path}?{query}" o solo el path si no hay query.
func (r Request) PathWithQuery() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

// Decision resultado: acción y, para rewrite/redirect, el destino (path + query).
type Decision struct {
	Action    Action
	Path      string // destino sin query
	RawQuery  string
	Subdomain string // definido solo cuando se reescribe por subdominio
}

// Location devuelve el destino completo "{path}{?query}".
func (d Decision) Location() string {
	if d.RawQuery == "" {
		return d.Path
	}
	return d.Path + "?" + d.RawQuery
}

// Config configuración estática del router.
type Config struct {
	// BaseDomain dominio base (APP_DOMAIN). Se recomienda con punto inicial
	// (".example.com") para que el subdominio quede limpio ("acme").
	BaseDomain string
	// ProtectedRoutes expresiones regulares (ancladas) de rutas que exigen identidad,
	// p. ej. "/api/agencies(.*)".
	ProtectedRoutes []string
}

// HostRouter aplica las reglas de enrutamiento por host y path.
type HostRouter struct {
	baseDomain string
	protected  []*regexp.Regexp
}

// NewHostRouter compila los patrones protegidos. Devuelve error si alguno es inválido.
func NewHostRouter(cfg Config) (*HostRouter, error) {
	r := &HostRouter{baseDomain: cfg.BaseDomain}
	for _, p := range cfg.ProtectedRoutes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile("^" + p + "$")
		if err != nil {
			return nil, fmt.Errorf("routing: patrón protegido %q: %w", p, err)
		}
		r.protected = append(r.protected, re)
	}
	return r, nil
}

// Decide evalúa las reglas en orden; la primera que aplica gana.
func (r *HostRouter) Decide(req Request) Decision {
	if excluded(req.Path) {
		return Decision{Action: ActionNext}
	}

	if sub := r.Subdomain(req.Host); sub != "" {
		return Decision{Action: ActionRewrite, Path: "/" + sub + req.Path, RawQuery: req.RawQuery, Subdomain: sub}
	}

	if req.Path == SignUpPath || req.Path == SignInPath {
		return Decision{Action: ActionRedirect, Path: AgencySignInPath}
	}

	if req.Path == "/" || (req.Path == SitePath && r.isBaseHost(req.Host)) {
		return Decision{Action: ActionRewrite, Path: SitePath}
	}

	if strings.HasPrefix(req.Path, AgencyPrefix) || strings.HasPrefix(req.Path, SubAccountPrefix) {
		return Decision{Action: ActionRewrite, Path: req.Path, RawQuery: req.RawQuery}
	}

	if r.IsProtected(req.Path) {
		if req.Authenticated {
			return Decision{Action: ActionNext}
		}
		return Decision{Action: ActionChallenge}
	}

	return Decision{Action: ActionNext}
}

// Subdomain devuelve el primer trozo no vacío del host partido por el dominio base.
// Host igual al dominio base (o dominio base sin configurar) => "".
// Con un dominio base sin punto inicial el trozo conserva el punto final ("acme.").
func (r *HostRouter) Subdomain(host string) string {
	if r.baseDomain == "" || host == "" || r.isBaseHost(host) {
		return ""
	}
	for _, part := range strings.Split(host, r.baseDomain) {
		if part != "" {
			return part
		}
	}
	return ""
}

// isBaseHost acepta el dominio base tal cual o sin su punto inicial (".example.com" => "example.com").
func (r *HostRouter) isBaseHost(host string) bool {
	if r.baseDomain == "" {
		return false
	}
	return host == r.baseDomain || host == strings.TrimPrefix(r.baseDomain, ".")
}

// IsProtected informa si path coincide con algún patrón protegido.
func (r *HostRouter) IsProtected(path string) bool {
	for _, re := range r.protected {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

var staticAsset = regexp.MustCompile(`.+\.\w+$`)

// excluded: los assets estáticos (path terminado en ".ext") y los paths internos "/_next"
// no pasan por las reglas; /api y /trpc siempre pasan.
func excluded(path string) bool {
	if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/trpc") {
		return false
	}
	if strings.HasPrefix(path, "/_next") {
		return true
	}
	return staticAsset.MatchString(path)
}
