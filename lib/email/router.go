package email

// Router maps a division display label to its contact mailbox. The table is
// built once at cold start and only read afterwards.
type Router struct {
	routes      map[string]string
	defaultAddr string
}

// DefaultAddress is the fallback mailbox for unrecognized division labels.
const DefaultAddress = "info@skgroupconnections.in"

var defaultRoutes = map[string]string{
	"Construction & Real Estate":          "construction@skgroupconnections.in",
	"Legal Network":                       "legal@skgroupconnections.in",
	"PR Agency":                           "pr@skgroupconnections.in",
	"Event Management":                    "events@skgroupconnections.in",
	"Tissue Manufacturing & Distribution": "tissues@skgroupconnections.in",
}

// NewRouter builds the routing table. Overrides replace or extend the
// built-in entries; an empty defaultAddr keeps the standard fallback.
func NewRouter(defaultAddr string, overrides map[string]string) *Router {
	routes := make(map[string]string, len(defaultRoutes)+len(overrides))
	for label, addr := range defaultRoutes {
		routes[label] = addr
	}
	for label, addr := range overrides {
		routes[label] = addr
	}

	if defaultAddr == "" {
		defaultAddr = DefaultAddress
	}

	return &Router{routes: routes, defaultAddr: defaultAddr}
}

// Route returns the contact mailbox for a division label, falling back to
// the default address for labels the table does not know.
func (r *Router) Route(divisionLabel string) string {
	if addr, ok := r.routes[divisionLabel]; ok {
		return addr
	}
	return r.defaultAddr
}
