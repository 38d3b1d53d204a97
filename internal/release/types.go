// Package release implements the orchestration core: the pre-deploy job
// runner, the service publisher, and the fail-fast pipeline sequencing
// them. Stages execute strictly sequentially; stage n+1 depends on the
// observable completion of stage n.
package release

// Request drives one deployment invocation. Created once per invocation;
// all fields are read-only after construction.
type Request struct {
	// ImageURL is the fully resolved artifact reference to deploy.
	ImageURL string
	// CommitSHA is the commit identifier echoed into manifests and the
	// final outcome.
	CommitSHA string
	// Environment is the target environment name, keying the override
	// configuration document.
	Environment string
	// RunMigration controls whether the pre-deploy job runs before the
	// service update.
	RunMigration bool
	// Region is the target region.
	Region string
	// ServiceAccount is the identity the deployed resources run as.
	ServiceAccount string
}

// JobResult reports the pre-deploy job's disposition. A job that is never
// submitted (RunMigration=false) is vacuously successful.
type JobResult struct {
	Submitted  bool
	Completed  bool
	ExitStatus string
}

// Outcome is the final externally visible result of a deployment.
type Outcome struct {
	ServiceEndpoint string `yaml:"service_endpoint"`
	ImageURL        string `yaml:"image_url"`
	CommitSHA       string `yaml:"commit_sha"`
	Environment     string `yaml:"environment"`
}
