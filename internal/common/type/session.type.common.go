package types

// FunnelSession identifies the funnel session carried in X-Funnel-Session.
type FunnelSession struct {
	ID string `json:"id" validate:"required"`
}
