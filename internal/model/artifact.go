package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"fraudscore/internal/domain/models"
)

var (
	// ErrArtifactMissing means the model file does not exist at the
	// configured path. Non-fatal: the host degrades to "absent".
	ErrArtifactMissing = errors.New("model artifact missing")

	// ErrArtifactLoad means the file exists but failed to decode or
	// validate. Non-fatal: same degradation.
	ErrArtifactLoad = errors.New("model artifact load failed")
)

const (
	activationReLU   = "relu"
	activationLinear = "linear"
)

// Layer is one dense layer of the scoring network. Weights is row-major:
// one row per output unit, one column per input.
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// Network is a small feed-forward classifier head deserialized from a JSON
// artifact. The final layer emits a single raw logit. Inference is
// deterministic: the artifact carries no training-time behavior.
type Network struct {
	InputDim int     `json:"input_dim"`
	Layers   []Layer `json:"layers"`
}

// LoadNetwork reads and validates a scoring artifact. All failures from the
// underlying decoding are normalized into ErrArtifactMissing or
// ErrArtifactLoad; nothing library-specific escapes this boundary.
func LoadNetwork(path string) (*Network, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrArtifactLoad, err)
	}

	var n Network
	if err := json.Unmarshal(b, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactLoad, err)
	}

	if err := n.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifactLoad, err)
	}

	return &n, nil
}

// validate checks the network is a well-formed inference graph: the fixed
// feature width, consistent layer shapes, known activations, scalar output.
// An artifact that cannot be called with a full feature vector must fail
// here, not per-request.
func (n *Network) validate() error {
	if n.InputDim != models.FeatureCount {
		return fmt.Errorf("input_dim must be %d, got %d", models.FeatureCount, n.InputDim)
	}
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}

	dim := n.InputDim
	for i, l := range n.Layers {
		if len(l.Weights) == 0 {
			return fmt.Errorf("layer %d has no weights", i)
		}
		if len(l.Bias) != len(l.Weights) {
			return fmt.Errorf("layer %d: bias length %d does not match %d output units", i, len(l.Bias), len(l.Weights))
		}
		for j, row := range l.Weights {
			if len(row) != dim {
				return fmt.Errorf("layer %d row %d: expected %d weights, got %d", i, j, dim, len(row))
			}
		}
		switch l.Activation {
		case activationReLU, activationLinear, "":
		default:
			return fmt.Errorf("layer %d: unsupported activation %q", i, l.Activation)
		}
		dim = len(l.Weights)
	}

	if dim != 1 {
		return fmt.Errorf("final layer must emit a single logit, got %d outputs", dim)
	}
	last := n.Layers[len(n.Layers)-1]
	if last.Activation == activationReLU {
		return fmt.Errorf("final layer must be linear to produce an unbounded logit")
	}

	return nil
}

// Forward runs the network over one feature vector and returns the raw
// logit. The receiver is read-only; concurrent calls are safe.
func (n *Network) Forward(vec []float64) (float64, error) {
	if len(vec) != n.InputDim {
		return 0, fmt.Errorf("expected %d features, got %d", n.InputDim, len(vec))
	}

	cur := vec
	for _, l := range n.Layers {
		next := make([]float64, len(l.Weights))
		for i, row := range l.Weights {
			sum := l.Bias[i]
			for j, w := range row {
				sum += w * cur[j]
			}
			if l.Activation == activationReLU && sum < 0 {
				sum = 0
			}
			next[i] = sum
		}
		cur = next
	}

	return cur[0], nil
}
