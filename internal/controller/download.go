package controller

import (
	"bytes"
	"errors"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/datauri"
	"github.com/ds124wfegd/animegen/internal/pkg/storage"
)

const DownloadFilename = "anime-character.png"

var ErrRemoteArtifact = errors.New("artifact is a remote reference")

// Artifact is the transformed image offered for download.
type Artifact struct {
	Filename string
	Payload  entity.Payload
}

// Inline reports whether the artifact carries its bytes.
func (a Artifact) Inline() bool {
	return datauri.IsDataURI(a.Payload)
}

// Save writes inline bytes into store under the artifact's filename.
// Remote references are left to the caller, nothing is fetched.
func (a Artifact) Save(store storage.FileStorage) (string, error) {
	if !a.Inline() {
		return "", ErrRemoteArtifact
	}
	_, data, err := datauri.Decode(a.Payload)
	if err != nil {
		return "", err
	}
	if err := store.Save(a.Filename, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return store.Path(a.Filename), nil
}

// Download returns the transformed image, if there is one.
func (c *Controller) Download() (Artifact, bool) {
	s := c.Snapshot()
	if !s.HasTransformed() {
		return Artifact{}, false
	}
	return Artifact{Filename: DownloadFilename, Payload: s.Transformed()}, true
}
