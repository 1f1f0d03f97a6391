package activity

import (
	"go.uber.org/zap"

	"tokdrift/internal/account"
	"tokdrift/internal/humanize"
	"tokdrift/internal/request"
)

// Deps are the explicit collaborators every executor runs against. Mass
// entry points take them as an argument instead of hanging off an object
// graph, so there is no hidden shared state between phases.
type Deps struct {
	Engine    *humanize.Engine
	Sleeper   humanize.Sleeper
	Signer    request.Signer
	Transport request.Transport
	Logger    *zap.Logger
}

// Facade binds a request facade to one session using the shared signer and
// transport.
func (d Deps) Facade(s *account.Session) *request.Facade {
	return request.NewFacade(s, d.Signer, d.Transport, d.Logger)
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
