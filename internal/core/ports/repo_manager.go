package ports

import "github.com/webcash/walletd/internal/core/domain"

type RepoManager interface {
	Terms() domain.TermsRepository
	Secrets() domain.SecretRepository
	Outputs() domain.OutputRepository
	HD() domain.HDRepository
	Close()
}
