package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/netcanvas/pkg/errors"
	"github.com/matzehuels/netcanvas/pkg/network"
)

// shape peeks at the first node entry to tell the two forms apart.
type shape struct {
	Nodes []json.RawMessage `json:"nodes"`
}

// ReadJSON decodes a raw or normalized dataset from r and returns the
// validated network. Raw datasets are normalized with styles; normalized
// ones are taken as is. ReadJSON does not close r.
func ReadJSON(r io.Reader, styles network.Styles) (*network.Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read dataset")
	}

	var p shape
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	if len(p.Nodes) > 0 && bytes.HasPrefix(bytes.TrimSpace(p.Nodes[0]), []byte("{")) {
		return decodeNetwork(data)
	}

	raw, err := decodeRaw(data)
	if err != nil {
		return nil, err
	}
	return network.Format(raw, styles)
}

// ReadRaw decodes and validates a raw dataset without normalizing it.
func ReadRaw(r io.Reader) (*network.Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read dataset")
	}
	return decodeRaw(data)
}

func decodeRaw(data []byte) (*network.Raw, error) {
	var raw network.Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode raw dataset")
	}
	if err := raw.Validate(); err != nil {
		return nil, err
	}
	return &raw, nil
}

func decodeNetwork(data []byte) (*network.Network, error) {
	var net network.Network
	if err := json.Unmarshal(data, &net); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode network")
	}
	if err := net.Validate(); err != nil {
		return nil, err
	}
	return &net, nil
}

// ImportJSON reads the dataset file at path. See [ReadJSON].
func ImportJSON(path string, styles network.Styles) (*network.Network, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f, styles)
}

// ReadFile returns the contents of the dataset file at path, used for
// hashing a dataset before it is decoded.
func ReadFile(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(err, path)
	}
	return data, nil
}

func open(path string) (*os.File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fileError(err, path)
	}
	return f, nil
}

func fileError(err error, path string) error {
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
}
