package inventory

import "github.com/nerrad567/gray-logic-components/internal/webserver"

// Version identifies the endpoint implementation in startup logs.
const Version = "lc-endpoint v0.2.0"

// Priority orders component setup. Higher values run first.
type Priority int

// Setup priorities.
const (
	PriorityHardware     Priority = 800
	PriorityData         Priority = 600
	PriorityNetwork      Priority = 250
	PriorityAfterNetwork Priority = 200
	PriorityLate         Priority = -100
)

// Transport is the web server the endpoint attaches to.
// *webserver.Server satisfies it.
type Transport interface {
	AddHandler(h webserver.Handler)
	Backend() string
}

// Component registers the Router with a Transport once at startup.
type Component struct {
	transport Transport
	router    *Router
	logger    Logger
	installed bool
}

// NewComponent creates the registration hook. transport may be nil when no
// web server is available; Setup then reports it and does nothing.
func NewComponent(transport Transport, router *Router) *Component {
	return &Component{
		transport: transport,
		router:    router,
		logger:    noopLogger{},
	}
}

// SetLogger sets the logger for the component.
func (c *Component) SetLogger(logger Logger) {
	c.logger = orNoop(logger)
}

// SetupPriority reports that Setup must run after networking is up.
func (c *Component) SetupPriority() Priority {
	return PriorityAfterNetwork
}

// Setup installs the Router on the transport. It never fails: a missing
// transport or an unsupported backend is logged and the endpoint stays
// unregistered. Calling Setup again after a successful install does nothing.
func (c *Component) Setup() {
	if c.installed {
		return
	}

	backend := ""
	if c.transport != nil {
		backend = c.transport.Backend()
	}
	c.logger.Info("registering components endpoint",
		"route", Route,
		"version", Version,
		"backend", backend,
	)

	if c.transport == nil {
		c.logger.Error("web server not available, cannot register endpoint", "route", Route)
		return
	}
	if !webserver.IsSupportedBackend(backend) {
		c.logger.Warn("no supported web server backend, endpoint not registered",
			"route", Route,
			"backend", backend,
		)
		return
	}
	if c.router == nil {
		c.logger.Error("components router missing, endpoint not registered", "route", Route)
		return
	}

	c.transport.AddHandler(c.router)
	c.installed = true
	c.logger.Info("components endpoint registered", "route", Route)
}

// Installed reports whether Setup attached the Router.
func (c *Component) Installed() bool {
	return c.installed
}

// DumpConfig logs the component's configuration.
func (c *Component) DumpConfig() {
	c.logger.Info("component loaded",
		"route", Route,
		"version", Version,
		"installed", c.installed,
	)
}
