// Package io reads and writes network datasets as JSON.
//
// # Overview
//
// Two forms are accepted on input. The raw form is the compact
// array-of-arrays dataset produced by analysis tools:
//
//	{
//	  "nodes": [[0, 0], [10, 10], [5, 2]],
//	  "links": [[0, 1, 4], [1, 2, 1]],
//	  "group": [0, 1, 1],
//	  "labels": ["root", "left", "right"]
//	}
//
// Nodes are [x, y] positions. Links are [source, target, weight] with the
// weight defaulting to 1. Optional per-node attributes are color (CSS color
// strings), group (categorical palette index), values (numeric ramp), size
// and labels. Raw datasets are normalized with [network.Format].
//
// The normalized form is what [WriteJSON] emits: typed node and link
// records with resolved colors:
//
//	{
//	  "nodes": [{"index": 0, "x": 0, "y": 0, "size": 6, "fill": "#68a1e5", "stroke": "#ffffff"}],
//	  "links": [{"source": 0, "target": 1, "weight": 4}]
//	}
//
// [ReadJSON] detects the form from the first node entry, so exported files
// can be imported again unchanged.
//
// # Errors
//
// Decoding failures return [errors.ErrCodeInvalidFormat], structural
// problems [errors.ErrCodeInvalidDataset] and missing files
// [errors.ErrCodeFileNotFound].
//
// [network.Format]: github.com/matzehuels/netcanvas/pkg/network
// [errors.ErrCodeInvalidFormat]: github.com/matzehuels/netcanvas/pkg/errors
// [errors.ErrCodeInvalidDataset]: github.com/matzehuels/netcanvas/pkg/errors
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/netcanvas/pkg/errors
package io
