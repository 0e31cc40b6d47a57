package models

// RepositoryRef identifies a GitHub repository by its owner and name.
// It is derived once from the user-supplied URL and never mutated.
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}
