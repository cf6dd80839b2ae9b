package knowledge

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadCorpus reads a JSON corpus file with the same layout as Corpus.
func LoadCorpus(path string) (Corpus, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var corpus Corpus
	if err := json.Unmarshal(raw, &corpus); err != nil {
		return Corpus{}, fmt.Errorf("decode corpus %s: %w", path, err)
	}

	return corpus, nil
}

// LoadStore is LoadCorpus followed by NewStore.
func LoadStore(path string, opts ...Option) (*Store, error) {
	corpus, err := LoadCorpus(path)
	if err != nil {
		return nil, err
	}
	return NewStore(corpus, opts...)
}
