package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/forestvpn/ledctl/coder"
	"github.com/forestvpn/ledctl/config"
)

func TestInit(t *testing.T) {
	config.AppDir = filepath.Join(t.TempDir(), "ledctl") + "/"
	err := config.Init()

	if err != nil {
		t.Error(err)
	}

	if _, err := os.Stat(config.AppDir); os.IsNotExist(err) {
		t.Error(err)
	}

	err = config.Init()

	if err != nil {
		t.Errorf("init: %s != nil; want ==", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := config.Load(filepath.Join(t.TempDir(), "config.ini"))

	if err != nil {
		t.Error(err)
	}

	if c.ReadSize != config.DefaultReadSize {
		t.Errorf("%d != %d; want ==", c.ReadSize, config.DefaultReadSize)
	}

	if c.Layout != coder.DefaultLayout {
		t.Errorf("%s != %s; want ==", c.Layout, coder.DefaultLayout)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	expected := config.Config{ReadSize: 64, Layout: coder.Layout{8, 4, 4, 4, 4, 4, 4}}
	err := config.Save(expected, path)

	if err != nil {
		t.Error(err)
	}

	actual, err := config.Load(path)

	if err != nil {
		t.Error(err)
	}

	if actual != expected {
		t.Errorf("%v != %v; want ==", actual, expected)
	}
}

func TestLoadInvalidLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	err := os.WriteFile(path, []byte("[client]\nlayout = 8,8,8,8,8,8,8\n"), 0644)

	if err != nil {
		t.Error(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Errorf("load: %s == nil; want !=", err)
	}
}

func TestJsonDumpLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	data := map[string]string{"host": "127.0.0.1", "port": "50007"}
	jsonData, err := json.Marshal(data)

	if err != nil {
		t.Error(err)
	}

	err = config.JsonDump(jsonData, path)

	if err != nil {
		t.Error(err)
	}

	loaded, err := config.JsonLoad(path)

	if err != nil {
		t.Error(err)
	}

	for k, v := range data {
		if loaded[k] != v {
			t.Errorf("%s: %s != %s; want ==", k, loaded[k], v)
		}
	}
}
