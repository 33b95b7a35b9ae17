package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path"

	"github.com/robgonnella/zlink/cli/commands"
	app_info "github.com/robgonnella/zlink/internal/app-info"
	"github.com/robgonnella/zlink/internal/config"
	"github.com/robgonnella/zlink/internal/core"
	"github.com/robgonnella/zlink/internal/discovery"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/spf13/viper"
)

/**
 * Main entry point for all commands
 * Here we setup environment config via viper
 */

// get network interface associated with ip
func getIPNetByIP(ip net.IP) (*net.IPNet, error) {
	interfaces, err := net.Interfaces()

	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		addrs, err := iface.Addrs()

		if err != nil {
			continue
		}

		for _, addr := range addrs {
			_, ipnet, err := net.ParseCIDR(addr.String())

			if err != nil {
				continue
			}

			if ipnet.Contains(ip) {
				return ipnet, nil
			}
		}
	}

	return nil, errors.New("failed to find IPNet")
}

// get cidr for preferred outbound ip of this machine
func getDefaultCidr() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")

	if err != nil {
		return "", err
	}

	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	ipnet, err := getIPNetByIP(localAddr.IP)

	if err != nil {
		return "", err
	}

	size, _ := ipnet.Mask.Size()

	return fmt.Sprintf("%s/%d", ipnet.IP, size), nil
}

func setConfigPaths() (string, error) {
	userHomeDir, err := os.UserHomeDir()

	if err != nil {
		return "", err
	}

	configDir := path.Join(userHomeDir, ".config", app_info.NAME)

	if err := os.MkdirAll(configDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return "", err
	}

	configFile := path.Join(configDir, "config.yml")

	logFile := path.Join(configDir, app_info.NAME+".log")

	userCacheDir, err := os.UserCacheDir()

	if err != nil {
		return "", err
	}

	cacheDir := path.Join(userCacheDir, app_info.NAME)

	if err := os.MkdirAll(cacheDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return "", err
	}

	dbFile := path.Join(cacheDir, app_info.NAME+".db")

	// share location of files and directories globally using viper
	viper.Set("log-file", logFile)
	viper.Set("config-dir", configDir)
	viper.Set("config-file", configFile)
	viper.Set("cache-dir", cacheDir)
	viper.Set("database-file", dbFile)

	return configFile, nil
}

// newCoreFactory loads the user config and returns a constructor for the
// app core. Sweeping discovery without targets falls back to the local
// network.
func newCoreFactory(configFile string) func() (*core.Core, error) {
	return func() (*core.Core, error) {
		conf, err := config.Load(configFile)

		if err != nil {
			return nil, err
		}

		method := discovery.Method(conf.Wifi.Discovery)

		if method != discovery.MethodBroadcast && len(conf.Wifi.Targets) == 0 {
			cidr, err := getDefaultCidr()

			if err != nil {
				return nil, fmt.Errorf("failed to find default network cidr: %w", err)
			}

			conf.Wifi.Targets = []string{cidr}
		}

		return core.CreateNewAppCore(*conf)
	}
}

// Entry point for the cli
func main() {
	log := logger.New()

	configFile, err := setConfigPaths()

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}

	// Get the "root" cobra cli command
	cmd := commands.Root(&commands.CommandProps{
		NewCore: newCoreFactory(configFile),
	})

	// Allows "grepping" of command output
	cmd.SetOutput(os.Stdout)

	// execute the cobra command and exit with error code if necessary
	err = cmd.ExecuteContext(context.Background())

	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
