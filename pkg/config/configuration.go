// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/compress"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
)

const (
	defaultJournalDir         = "./mo-catalog-journal"
	defaultJournalCompression = "lz4"
	defaultPushdownTimeZone   = "Local"
	defaultLogLevel           = "info"
	defaultLogFormat          = "console"
)

// Parameters of the catalog service
type Parameters struct {
	//default is false. true only in unit tests, allows catalogs of type 'test'
	EnableTestCatalog bool `toml:"enableTestCatalog"`

	//default is 'Local'. the zone datetime literals are interpreted in when pushed down. 'UTC' or an IANA name.
	PushdownTimeZone string `toml:"pushdownTimeZone"`

	Journal JournalParameters `toml:"journal"`

	Log logutil.LogConfig `toml:"log"`

	//resources registered at bootstrap
	Resources []ResourceParameters `toml:"resource"`

	//catalogs created at bootstrap when missing
	Catalogs []CatalogParameters `toml:"catalog"`
}

type JournalParameters struct {
	//the pebble directory holding the catalog journal
	Dir string `toml:"dir"`

	//default is 'lz4'. one of lz4, snappy, none
	Compression string `toml:"compression"`
}

type ResourceParameters struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type CatalogParameters struct {
	Name       string            `toml:"name"`
	Resource   string            `toml:"resource"`
	Comment    string            `toml:"comment"`
	Properties map[string]string `toml:"properties"`
}

// LoadParameters decodes the toml file at path and fills defaults.
func LoadParameters(path string) (*Parameters, error) {
	params := &Parameters{}
	if _, err := toml.DecodeFile(path, params); err != nil {
		return nil, moerr.NewBadConfig(context.Background(), "decode %s: %v", path, err)
	}
	params.SetDefaultValues()
	return params, nil
}

// ParseParameters is LoadParameters over an in-memory document.
func ParseParameters(data string) (*Parameters, error) {
	params := &Parameters{}
	if _, err := toml.Decode(data, params); err != nil {
		return nil, moerr.NewBadConfig(context.Background(), "decode: %v", err)
	}
	params.SetDefaultValues()
	return params, nil
}

func (p *Parameters) SetDefaultValues() {
	if p.PushdownTimeZone == "" {
		p.PushdownTimeZone = defaultPushdownTimeZone
	}
	if p.Journal.Dir == "" {
		p.Journal.Dir = defaultJournalDir
	}
	if p.Journal.Compression == "" {
		p.Journal.Compression = defaultJournalCompression
	}
	if p.Log.Level == "" {
		p.Log.Level = defaultLogLevel
	}
	if p.Log.Format == "" {
		p.Log.Format = defaultLogFormat
	}
	for i := range p.Catalogs {
		if p.Catalogs[i].Properties == nil {
			p.Catalogs[i].Properties = map[string]string{}
		}
	}
}

func (p *Parameters) Validate(ctx context.Context) error {
	if _, err := p.Location(); err != nil {
		return err
	}
	if _, err := p.JournalCompression(); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(p.Resources))
	for _, r := range p.Resources {
		if r.Name == "" || r.Type == "" {
			return moerr.NewBadConfig(ctx, "resource needs both name and type")
		}
		if _, ok := seen[r.Name]; ok {
			return moerr.NewBadConfig(ctx, "duplicate resource %s", r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	for _, c := range p.Catalogs {
		if c.Name == "" {
			return moerr.NewBadConfig(ctx, "catalog without name")
		}
	}
	return nil
}

// Location resolves PushdownTimeZone.
func (p *Parameters) Location() (*time.Location, error) {
	switch strings.ToLower(p.PushdownTimeZone) {
	case "", "local", "system":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(p.PushdownTimeZone)
	if err != nil {
		return nil, moerr.NewBadConfig(context.Background(), "invalid pushdownTimeZone %s", p.PushdownTimeZone)
	}
	return loc, nil
}

func (p *Parameters) JournalCompression() (compress.T, error) {
	t, ok := compress.Parse(p.Journal.Compression)
	if !ok {
		return compress.None, moerr.NewBadConfig(context.Background(), "invalid journal compression %s", p.Journal.Compression)
	}
	return t, nil
}
