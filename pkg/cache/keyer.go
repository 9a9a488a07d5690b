package cache

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	View         string  `json:"view"`
	Format       string  `json:"format"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
	Label        string  `json:"label,omitempty"`
	ShelfOpacity float64 `json:"shelf_opacity,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// PlanHash fingerprints a serialised plan.
	PlanHash(plan []byte) string
	// ArtifactKey is the key for one rendered artifact of a plan.
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unprefixed keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanHash returns the SHA-256 of the plan bytes.
func (DefaultKeyer) PlanHash(plan []byte) string { return Hash(plan) }

// ArtifactKey hashes the plan hash together with the render options.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}
