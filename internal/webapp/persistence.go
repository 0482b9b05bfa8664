package webapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const snapshotVersion = 1

// snapshot is the on-disk form of the submission table.
type snapshot struct {
	Version     int                    `json:"version"`
	SavedAt     time.Time              `json:"saved_at"`
	Submissions map[string]*Submission `json:"submissions"`
}

// SaveState writes every submission to path. The file is replaced atomically
// so a crash mid-write leaves the previous snapshot intact.
func (s *Server) SaveState(path string) error {
	snap := snapshot{
		Version:     snapshotVersion,
		SavedAt:     s.now().UTC(),
		Submissions: s.subs.Snapshot(),
	}
	if err := writeSnapshot(path, snap); err != nil {
		return fmt.Errorf("save state %s: %w", path, err)
	}
	return nil
}

// LoadState restores submissions written by SaveState and returns how many
// were loaded. Analyses cut off by the previous shutdown are marked errored
// and their quota slots handed back. A missing file loads nothing.
func (s *Server) LoadState(ctx context.Context, path string) (int, error) {
	snap, err := readSnapshot(path)
	if err != nil {
		return 0, err
	}
	interrupted := s.subs.Restore(snap.Submissions)
	s.releaseSlots(ctx, interrupted)
	if len(interrupted) > 0 {
		s.log.WithField("count", len(interrupted)).Warn("analyses interrupted by restart")
	}
	return len(snap.Submissions), nil
}

func readSnapshot(path string) (snapshot, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return snapshot{Version: snapshotVersion}, nil
	}
	if err != nil {
		return snapshot{}, err
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snapshot{}, fmt.Errorf("decode state %s: %w", path, err)
	}
	if snap.Version != snapshotVersion {
		return snapshot{}, fmt.Errorf("state %s: unsupported version %d", path, snap.Version)
	}
	return snap, nil
}

func writeSnapshot(path string, snap snapshot) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err = enc.Encode(snap); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
