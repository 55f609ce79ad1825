package main

import (
	_ "embed"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/tomz197/career-run/internal/config"
	"github.com/tomz197/career-run/internal/logging"
	loopconfig "github.com/tomz197/career-run/internal/loop/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

// renderPage fills the connection details into the landing page.
func renderPage(sshHost, sshPort string) string {
	cmd := "ssh " + sshHost
	if sshPort != "" && sshPort != "22" {
		cmd = "ssh -p " + sshPort + " " + sshHost
	}
	return strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SSHCommand}}", cmd,
		"{{.MinWidth}}", strconv.Itoa(loopconfig.MinTermWidth),
		"{{.MinHeight}}", strconv.Itoa(loopconfig.MinTermHeight),
	).Replace(htmlPage)
}

func main() {
	logger := logging.New(os.Stderr, config.GetEnv("CAREER_RUN_LOG_LEVEL", "info"))

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", config.GetEnv("SSH_PORT", "22"))

	page := renderPage(sshHost, sshPort)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
