package embed

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"gopkg.in/yaml.v3"
)

// Meta mirrors the bundle's meta.yaml.
type Meta struct {
	Model        string `yaml:"model"`         // model file name, default encoder.onnx
	SeqLen       int    `yaml:"seq_len"`       // tokenizer sequence length
	EmbeddingDim int    `yaml:"embedding_dim"` // output vector width (required)
	InputIDs     string `yaml:"input_ids"`     // input tensor name, default input_ids
	AttentionKey string `yaml:"attention"`     // input tensor name, default attention_mask
	Output       string `yaml:"output"`        // output tensor name, default last_hidden_state
}

// Encoder wraps an ONNX sentence-encoder session and its tokenizer.
// Embed output is mean-pooled over tokens and L2-normalized.
type Encoder struct {
	session   *ort.AdvancedSession
	tokenizer *Tokenizer
	seqLen    int
	dim       int

	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	output        *ort.Tensor[float32]

	mu sync.Mutex
}

// LoadEncoder initializes the ONNX session and tokenizer from a bundle
// directory holding encoder.onnx, tokenizer/vocab.txt, and meta.yaml.
// seqLen overrides the bundle's sequence length when positive.
func LoadEncoder(bundleDir string, seqLen int) (*Encoder, error) {
	if bundleDir == "" {
		return nil, errors.New("bundleDir is empty")
	}

	meta, err := loadMeta(filepath.Join(bundleDir, "meta.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load bundle meta: %w", err)
	}
	if seqLen <= 0 {
		seqLen = meta.SeqLen
	}
	if seqLen <= 0 {
		seqLen = 64
	}

	libPath := resolveSharedLibraryPath(bundleDir)
	if libPath == "" {
		return nil, fmt.Errorf("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	modelPath := filepath.Join(bundleDir, meta.Model)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	tokenizer, err := LoadTokenizer(filepath.Join(bundleDir, "tokenizer", "vocab.txt"))
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	inputShape := ort.NewShape(1, int64(seqLen))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate input_ids tensor: %w", err)
	}
	attnMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate attention_mask tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(seqLen), int64(meta.EmbeddingDim)))
	if err != nil {
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{meta.InputIDs, meta.AttentionKey},
		[]string{meta.Output},
		[]ort.Value{inputIDs, attnMask},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Encoder{
		session:       session,
		tokenizer:     tokenizer,
		seqLen:        seqLen,
		dim:           meta.EmbeddingDim,
		inputIDs:      inputIDs,
		attentionMask: attnMask,
		output:        output,
	}, nil
}

// Embed runs the encoder over text and returns a unit-length vector.
func (e *Encoder) Embed(text string) ([]float32, error) {
	if e == nil || e.session == nil || e.tokenizer == nil {
		return nil, errors.New("encoder not initialized")
	}

	ids, attn := e.tokenizer.Encode(text, e.seqLen)

	e.mu.Lock()
	defer e.mu.Unlock()

	copy(e.inputIDs.GetData(), ids)
	copy(e.attentionMask.GetData(), attn)

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}

	return meanPool(e.output.GetData(), attn, e.seqLen, e.dim), nil
}

// Dim reports the embedding width.
func (e *Encoder) Dim() int { return e.dim }

// meanPool averages token vectors where the attention mask is set, then
// L2-normalizes the result.
func meanPool(raw []float32, attn []int64, seqLen, dim int) []float32 {
	out := make([]float32, dim)
	count := 0
	for t := 0; t < seqLen; t++ {
		if t >= len(attn) || attn[t] == 0 {
			continue
		}
		count++
		base := t * dim
		for d := 0; d < dim && base+d < len(raw); d++ {
			out[d] += raw[base+d]
		}
	}
	if count > 0 {
		inv := 1 / float32(count)
		for d := range out {
			out[d] *= inv
		}
	}
	return normalizeVec(out)
}

func normalizeVec(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
	return v
}

// Cosine returns the cosine similarity of two equal-length vectors.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func loadMeta(path string) (*Meta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta Meta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	if meta.Model == "" {
		meta.Model = "encoder.onnx"
	}
	if meta.InputIDs == "" {
		meta.InputIDs = "input_ids"
	}
	if meta.AttentionKey == "" {
		meta.AttentionKey = "attention_mask"
	}
	if meta.Output == "" {
		meta.Output = "last_hidden_state"
	}
	if meta.EmbeddingDim <= 0 {
		return nil, fmt.Errorf("meta.yaml: embedding_dim must be positive")
	}
	return &meta, nil
}

// resolveSharedLibraryPath locates a platform-specific onnxruntime
// shared library. ONNXRUNTIME_SHARED_LIBRARY_PATH wins when set.
func resolveSharedLibraryPath(bundleDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"libonnxruntime.so",
		"onnxruntime.so",
		"onnxruntime.dll",
	}
	dirs := []string{
		bundleDir,
		filepath.Join(bundleDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
