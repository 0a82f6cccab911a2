// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

// configuration returns a pdfcpu configuration that never touches the
// user config directory.
func configuration() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Merge concatenates PDF documents in order.
func Merge(docs ...[]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, errors.New("merge pdf: no documents")
	}
	if len(docs) == 1 {
		return docs[0], nil
	}

	readers := make([]io.ReadSeeker, 0, len(docs))
	for i, d := range docs {
		if len(d) == 0 {
			return nil, fmt.Errorf("merge pdf: document %d is empty", i)
		}
		readers = append(readers, bytes.NewReader(d))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, configuration()); err != nil {
		return nil, fmt.Errorf("merge pdf: %w", err)
	}
	return out.Bytes(), nil
}

// PageCount returns the number of pages in a PDF document.
func PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), configuration())
	if err != nil {
		return 0, fmt.Errorf("count pdf pages: %w", err)
	}
	return n, nil
}
