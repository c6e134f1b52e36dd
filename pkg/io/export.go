package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/network"
)

// WriteJSON encodes the normalized network as indented JSON.
// The output can be re-imported with [ReadJSON].
func WriteJSON(net *network.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(net); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode network")
	}
	return nil
}

// ExportJSON writes the normalized network to a JSON file at path.
func ExportJSON(net *network.Network, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(net, f)
}
