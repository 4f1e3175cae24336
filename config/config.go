package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/forestvpn/ledctl/coder"
	"gopkg.in/ini.v1"
)

var home, _ = os.UserHomeDir()
var AppDir = home + "/.ledctl/"

var ConfigFile = AppDir + "config.ini"
var SessionFile = AppDir + "session.json"

// DefaultReadSize is the maximum number of response bytes read after the probe is sent.
const DefaultReadSize = 1000

// Config carries the [client] section of ConfigFile.
type Config struct {
	ReadSize int
	Layout   coder.Layout
}

// Creates directories structure
func Init() error {
	if _, err := os.Stat(AppDir); os.IsNotExist(err) {
		return os.MkdirAll(AppDir, 0755)
	}
	return nil
}

// Load reads the configuration file at filepath.
// A missing file yields the defaults.
func Load(filepath string) (Config, error) {
	config := Config{ReadSize: DefaultReadSize, Layout: coder.DefaultLayout}

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	file, err := ini.Load(filepath)

	if err != nil {
		return config, err
	}

	section := file.Section("client")
	config.ReadSize = section.Key("read_size").MustInt(DefaultReadSize)

	if config.ReadSize <= 0 {
		return config, fmt.Errorf("%s: read_size must be positive, got %d", filepath, config.ReadSize)
	}

	if section.HasKey("layout") {
		layout, err := coder.ParseLayout(section.Key("layout").String())

		if err != nil {
			return config, fmt.Errorf("%s: %w", filepath, err)
		}

		config.Layout = layout
	}

	return config, nil
}

// Save writes config to filepath in ini format.
func Save(config Config, filepath string) error {
	file := ini.Empty()
	section, err := file.NewSection("client")

	if err != nil {
		return err
	}

	_, err = section.NewKey("read_size", fmt.Sprint(config.ReadSize))

	if err != nil {
		return err
	}

	_, err = section.NewKey("layout", config.Layout.String())

	if err != nil {
		return err
	}

	return file.SaveTo(filepath)
}

func JsonDump(data []byte, filepath string) error {
	file, err := os.Create(filepath)

	if err != nil {
		return err
	}

	defer file.Close()
	n, err := file.Write(data)

	if err != nil {
		return err
	}

	if n != len(data) {
		return fmt.Errorf("error dumping %s to %s", string(data), filepath)
	}
	return nil
}

func readFile(filepath string) ([]byte, error) {
	file, err := os.Open(filepath)

	if err != nil {
		return []byte(""), err
	}

	defer file.Close()
	return ioutil.ReadAll(file)
}

func JsonLoad(filepath string) (map[string]string, error) {
	var data map[string]string
	byteStream, err := readFile(filepath)

	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(byteStream, &data)
	return data, err
}
