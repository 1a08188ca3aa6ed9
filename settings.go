package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"

	"dscheirer.com/bcdsegment/ca3161"
)

const defaultConfigFile = "/etc/default/bcdsegment/bcdsegment.conf"

// settings keys
const (
	sDelay        = "segmentDelay"
	sSymbolOffset = "symbolBitOffset"
	sPointBit     = "pointBitIndex"
	sReservedBit  = "reservedInputBit"
	sPort         = "port"
	sPortPins     = "portPins"
	sGpioChip     = "gpioChip"
	sI2CBus       = "i2c_bus"
	sI2CDev       = "i2c_device"
	sI2CSim       = "i2c_simulated"
	sLogFile      = "logFile"
	sDebug        = "debug_dump"
	sStatusAddr   = "statusAddr"
	sStatusUser   = "statusUser"
	sStatusSecret = "statusSecret"
	sMQTTBroker   = "mqttBroker"
	sMQTTTopic    = "mqttTopic"
	sResetButton  = "resetButton"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sDelay] = 1000 * time.Millisecond
	s[sSymbolOffset] = ca3161.DefaultLayout.SymbolOffset
	s[sPointBit] = ca3161.DefaultLayout.PointBit
	s[sReservedBit] = ca3161.DefaultLayout.ReservedInputBit
	s[sPortPins] = "4,17,27,22,23,24,-1,-1"
	s[sGpioChip] = "gpiochip0"
	s[sI2CBus] = 1
	s[sI2CDev] = byte(0x20)
	s[sLogFile] = "/var/log/bcdsegment.log"
	s[sDebug] = false
	s[sStatusAddr] = ""
	s[sStatusUser] = "bcdsegment"
	s[sStatusSecret] = ""
	s[sMQTTBroker] = ""
	s[sMQTTTopic] = "bcdsegment/status"
	s[sResetButton] = -1

	// real hardware only on the pi
	onPi := runtime.GOARCH == "arm" || runtime.GOARCH == "arm64"
	if onPi {
		s[sPort] = portRPIO
	} else {
		s[sPort] = portLog
	}
	s[sI2CSim] = !onPi

	return configSettings{settings: s}
}

func (s configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		_, dataType, _, err := jsonparser.Get(data, k)
		if err != nil || dataType == jsonparser.Null {
			continue
		}

		switch initVal.(type) {
		case uint8:
			var val uint64
			valSigned, err2 := jsonparser.GetInt(data, k)
			if err2 == nil {
				val, err = uint64(valSigned), nil
				if valSigned < 0 || valSigned > 0xFF {
					err = fmt.Errorf("%d is not a byte", valSigned)
				}
			} else {
				// try strconv ParseUint, "0x20" style
				var valString string
				valString, err = jsonparser.GetString(data, k)
				if err == nil {
					val, err = strconv.ParseUint(valString, 0, 8)
				}
			}
			if err == nil {
				s.settings[k] = byte(val)
			}
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			if err == nil {
				s.settings[k] = int(val)
			}
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false
				str, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(str) {
				case "true":
					bVal, err = true, nil
				case "false":
					bVal, err = false, nil
				}
			}
			if err == nil {
				s.settings[k] = bVal
			}
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			var str string
			str, err = jsonparser.GetString(data, k)
			if err == nil {
				s.settings[k] = str
			}
		default:
			err = fmt.Errorf("Bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

func initSettings(configFile string) (configSettings, error) {
	// defaults
	s := defaultSettings()

	// try to open the config file
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return s, errors.Wrapf(err, "could not load conf file '%s'", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)

	if err := s.settingsFromJSON(data); err != nil {
		return s, errors.Wrapf(err, "bad conf file '%s'", configFile)
	}

	return s, nil
}

// layoutFromSettings builds and checks the port wiring
func layoutFromSettings(s configSettings) (ca3161.Layout, error) {
	l := ca3161.Layout{
		SymbolOffset:     s.GetByte(sSymbolOffset),
		PointBit:         s.GetByte(sPointBit),
		ReservedInputBit: s.GetByte(sReservedBit),
	}
	return l, l.Validate()
}

func (s configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	case byte:
		return int(v)
	default:
		return 0
	}
}

func (s configSettings) Set(key string, val interface{}) {
	s.settings[key] = val
}

// copy so a caller can Set without touching the original
func (s configSettings) clone() configSettings {
	c := make(map[string]interface{}, len(s.settings))
	for k, v := range s.settings {
		c[k] = v
	}
	return configSettings{settings: c}
}

func (s configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.settings[k]
		if k == sStatusSecret && v != "" {
			v = "****"
		}
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
