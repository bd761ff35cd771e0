package sync

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/dotflex/dotflex/pkg/config"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/logging"
	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
)

// Hook runs after a successful pull
type Hook func(ctx context.Context) error

// Syncer synchronizes one repository directory
type Syncer struct {
	dir    string
	cfg    config.Sync
	logger zerolog.Logger
}

// New creates a syncer for the repository at dir
func New(dir string, cfg config.Sync) *Syncer {
	defaults := config.Default().Sync
	if cfg.Remote == "" {
		cfg.Remote = defaults.Remote
	}
	if cfg.Branch == "" {
		cfg.Branch = defaults.Branch
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = defaults.CommitMessage
	}
	return &Syncer{
		dir:    dir,
		cfg:    cfg,
		logger: logging.GetLogger("sync"),
	}
}

// Exists reports whether the directory holds a git repository
func (s *Syncer) Exists() bool {
	_, err := git.PlainOpen(s.dir)
	return err == nil
}

// Init creates the repository with the configured branch and adds url as
// the configured remote
func (s *Syncer) Init(ctx context.Context, url string) error {
	if url == "" {
		return errors.New(errors.ErrInvalidInput, "no remote url given")
	}

	repo, err := git.PlainInitWithOptions(s.dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(s.cfg.Branch),
		},
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrSyncFailed, "could not initialize git repository at %s", s.dir).
			WithDetail("path", s.dir)
	}

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: s.cfg.Remote,
		URLs: []string{url},
	}); err != nil {
		return errors.Wrapf(err, errors.ErrSyncFailed, "could not set up remote %s for git repository at %s", url, s.dir).
			WithDetail("path", s.dir).
			WithDetail("remote", url)
	}

	s.logger.Info().
		Str("path", s.dir).
		Str("remote", s.cfg.Remote).
		Str("url", url).
		Msg("Initialized repository")
	return nil
}

// Commit stages every change and commits it. It reports whether a commit
// was made; a clean tree is not an error.
func (s *Syncer) Commit(ctx context.Context) (bool, error) {
	repo, err := s.open()
	if err != nil {
		return false, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrSyncFailed, "could not open worktree")
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, errors.Wrap(err, errors.ErrSyncFailed, "could not stage changes")
	}

	status, err := wt.Status()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrSyncFailed, "could not read worktree status")
	}
	if status.IsClean() {
		s.logger.Debug().Msg("Nothing to commit")
		return false, nil
	}

	hash, err := wt.Commit(s.cfg.CommitMessage, &git.CommitOptions{Author: s.author()})
	if err != nil {
		return false, errors.Wrap(err, errors.ErrSyncFailed, "could not commit changes")
	}

	s.logger.Info().Str("commit", hash.String()).Msg("Committed changes")
	return true, nil
}

// Upsync commits local changes and pushes the branch to the remote
func (s *Syncer) Upsync(ctx context.Context) error {
	if _, err := s.Commit(ctx); err != nil {
		return err
	}

	repo, err := s.open()
	if err != nil {
		return err
	}

	if _, err := repo.Head(); stderrors.Is(err, plumbing.ErrReferenceNotFound) {
		s.logger.Info().Msg("Repository is empty, nothing to push")
		return nil
	}

	branch := plumbing.NewBranchReferenceName(s.cfg.Branch)
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: s.cfg.Remote,
		RefSpecs:   []gitconfig.RefSpec{gitconfig.RefSpec(branch + ":" + branch)},
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrapf(err, errors.ErrSyncFailed, "could not push to %s", s.cfg.Remote).
			WithDetail("remote", s.cfg.Remote)
	}

	s.logger.Info().Str("remote", s.cfg.Remote).Str("branch", s.cfg.Branch).Msg("Pushed")
	return nil
}

// Downsync pulls the branch from the remote, then runs hook
func (s *Syncer) Downsync(ctx context.Context, hook Hook) error {
	repo, err := s.open()
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return errors.Wrap(err, errors.ErrSyncFailed, "could not open worktree")
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName:    s.cfg.Remote,
		ReferenceName: plumbing.NewBranchReferenceName(s.cfg.Branch),
		SingleBranch:  true,
	})
	if err != nil && !stderrors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Wrapf(err, errors.ErrSyncFailed, "could not pull from %s", s.cfg.Remote).
			WithDetail("remote", s.cfg.Remote)
	}
	s.logger.Info().Str("remote", s.cfg.Remote).Str("branch", s.cfg.Branch).Msg("Pulled")

	if hook == nil {
		return nil
	}
	if err := hook(ctx); err != nil {
		return errors.Wrap(err, errors.ErrSyncFailed, "post-pull install failed")
	}
	return nil
}

func (s *Syncer) open() (*git.Repository, error) {
	repo, err := git.PlainOpen(s.dir)
	if stderrors.Is(err, git.ErrRepositoryNotExists) {
		return nil, errors.Newf(errors.ErrRepoNotFound, "no local repo found at %s", s.dir).
			WithDetail("path", s.dir)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSyncFailed, "could not open repository at %s", s.dir).
			WithDetail("path", s.dir)
	}
	return repo, nil
}

// author prefers the user's global git identity over the configured one
func (s *Syncer) author() *object.Signature {
	name, email := s.cfg.AuthorName, s.cfg.AuthorEmail
	if global, err := gitconfig.LoadConfig(gitconfig.GlobalScope); err == nil {
		if global.User.Name != "" {
			name = global.User.Name
		}
		if global.User.Email != "" {
			email = global.User.Email
		}
	}
	if name == "" {
		name = config.Default().Sync.AuthorName
	}
	if email == "" {
		email = config.Default().Sync.AuthorEmail
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}
