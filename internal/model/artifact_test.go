package model

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeArtifact(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}
	return path
}

const linearArtifact = `{
	"input_dim": 4,
	"layers": [
		{"weights": [[0.01, -0.2, 1.5, 0.3]], "bias": [-2.0], "activation": "linear"}
	]
}`

func TestLoadNetworkMissing(t *testing.T) {
	_, err := LoadNetwork(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("expected ErrArtifactMissing, got %v", err)
	}
}

func TestLoadNetworkBadJSON(t *testing.T) {
	path := writeArtifact(t, "{not json")
	_, err := LoadNetwork(path)
	if !errors.Is(err, ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad, got %v", err)
	}
}

func TestLoadNetworkWrongInputWidth(t *testing.T) {
	// internally consistent, but not callable with a full feature vector
	path := writeArtifact(t, `{
		"input_dim": 3,
		"layers": [
			{"weights": [[0.1, -0.5, 0.25]], "bias": [0.0], "activation": "linear"}
		]
	}`)
	_, err := LoadNetwork(path)
	if !errors.Is(err, ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad for 3-input network, got %v", err)
	}
}

func TestLoadNetworkShapeMismatch(t *testing.T) {
	// second row has 3 weights instead of 4
	path := writeArtifact(t, `{
		"input_dim": 4,
		"layers": [
			{"weights": [[1,2,3,4],[1,2,3]], "bias": [0,0], "activation": "relu"},
			{"weights": [[1,1]], "bias": [0], "activation": "linear"}
		]
	}`)
	_, err := LoadNetwork(path)
	if !errors.Is(err, ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad, got %v", err)
	}
}

func TestLoadNetworkMultiOutputRejected(t *testing.T) {
	path := writeArtifact(t, `{
		"input_dim": 4,
		"layers": [
			{"weights": [[1,2,3,4],[4,3,2,1]], "bias": [0,0], "activation": "linear"}
		]
	}`)
	_, err := LoadNetwork(path)
	if !errors.Is(err, ErrArtifactLoad) {
		t.Fatalf("expected ErrArtifactLoad for 2 outputs, got %v", err)
	}
}

func TestForwardLinear(t *testing.T) {
	path := writeArtifact(t, linearArtifact)
	n, err := LoadNetwork(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := n.Forward([]float64{500, 14, 1, 3})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	want := 0.01*500 - 0.2*14 + 1.5*1 + 0.3*3 - 2.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected logit %v, got %v", want, got)
	}
}

func TestForwardReLUHiddenLayer(t *testing.T) {
	path := writeArtifact(t, `{
		"input_dim": 4,
		"layers": [
			{"weights": [[1, 0, 0, 0], [-1, 0, 0, 0]], "bias": [0, 0], "activation": "relu"},
			{"weights": [[1, 1]], "bias": [0.5], "activation": "linear"}
		]
	}`)
	n, err := LoadNetwork(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// hidden = [relu(3), relu(-3)] = [3, 0]; logit = 3 + 0 + 0.5
	got, err := n.Forward([]float64{3, 7, 0, 0})
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if math.Abs(got-3.5) > 1e-12 {
		t.Fatalf("expected logit 3.5, got %v", got)
	}
}

func TestForwardWrongDim(t *testing.T) {
	path := writeArtifact(t, linearArtifact)
	n, err := LoadNetwork(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := n.Forward([]float64{1, 2, 3}); err == nil {
		t.Fatalf("expected error for 3-element vector")
	}
}
