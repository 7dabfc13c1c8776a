// Package main writes a development CA and a server certificate signed by it
// into a directory (./certs by default). An existing CA in that directory is
// reused so clients keep trusting the same ca.crt.
//
// Serve with TLS_CERT=certs/server.crt TLS_KEY=certs/server.key and point the
// client at the CA with --ca certs/ca.crt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atinyakov/FotoShop/internal/certgen"
)

const (
	caValidity     = 10 * 365 * 24 * time.Hour
	serverValidity = 365 * 24 * time.Hour
)

func main() {
	dir := flag.String("dir", "certs", "output directory")
	hosts := flag.String("hosts", "localhost,127.0.0.1", "comma-separated server host names and IPs")
	flag.Parse()

	if err := run(*dir, strings.Split(*hosts, ","), os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(dir string, hosts []string, out io.Writer) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	caCertPath := filepath.Join(dir, "ca.crt")
	caKeyPath := filepath.Join(dir, "ca.key")

	ca, err := certgen.LoadCA(caCertPath, caKeyPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if ca, err = certgen.GenerateCA("FotoShop Dev CA", caValidity); err != nil {
			return err
		}
		certPEM, keyPEM, err := ca.EncodePEM()
		if err != nil {
			return err
		}
		if err := writePair(caCertPath, caKeyPath, certPEM, keyPEM); err != nil {
			return err
		}
		fmt.Fprintf(out, "created CA %s\n", caCertPath)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "reusing CA %s\n", caCertPath)
	}

	clean := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if h = strings.TrimSpace(h); h != "" {
			clean = append(clean, h)
		}
	}
	certPEM, keyPEM, err := ca.IssueServerCertificate(clean, serverValidity)
	if err != nil {
		return err
	}
	serverCert := filepath.Join(dir, "server.crt")
	if err := writePair(serverCert, filepath.Join(dir, "server.key"), certPEM, keyPEM); err != nil {
		return err
	}
	fmt.Fprintf(out, "created server certificate %s for %s\n", serverCert, strings.Join(clean, ", "))
	return nil
}

func writePair(certPath, keyPath string, certPEM, keyPEM []byte) error {
	if err := os.WriteFile(certPath, certPEM, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", certPath, err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", keyPath, err)
	}
	return nil
}
