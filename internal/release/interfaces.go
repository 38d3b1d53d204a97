package release

// ManifestRenderer renders a manifest template against resolved data.
// The concrete renderer lives in internal/manifest; this consumer-side
// contract keeps the pipeline mockable.
type ManifestRenderer interface {
	// Render reads the template file and executes it against data.
	// Any failure means no manifest was produced.
	Render(templatePath string, data map[string]any) (string, error)
}

// OutcomeRecorder persists a deployment outcome for the release history.
// Recording is best-effort: a recorder failure never changes the
// deployment result.
type OutcomeRecorder interface {
	// Record persists the outcome and returns the record's name.
	Record(outcome Outcome) (string, error)
}
