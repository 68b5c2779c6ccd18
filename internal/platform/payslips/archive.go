package payslips

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"paycalc/internal/platform/crypto"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Archive stores rendered payslips under Dir, one file per employee and
// period. Files are sealed when the crypto service has a key.
type Archive struct {
	Dir    string
	Crypto *crypto.Service
}

func NewArchive(dir string, svc *crypto.Service) *Archive {
	return &Archive{Dir: dir, Crypto: svc}
}

// Save writes the PDF and returns its path. Sealed files get a ".sealed"
// suffix.
func (a *Archive) Save(employeeID, periodID string, pdf []byte) (string, error) {
	if err := os.MkdirAll(a.Dir, 0o750); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.pdf", clean(periodID), clean(employeeID))
	data := pdf
	if a.Crypto != nil && a.Crypto.Configured() {
		sealed, err := a.Crypto.Encrypt(pdf, binding(employeeID, periodID))
		if err != nil {
			return "", err
		}
		data = sealed
		name += ".sealed"
	}
	path := filepath.Join(a.Dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a payslip written by Save and opens it if sealed.
func (a *Archive) Load(employeeID, periodID string) ([]byte, error) {
	name := fmt.Sprintf("%s_%s.pdf", clean(periodID), clean(employeeID))
	if a.Crypto != nil && a.Crypto.Configured() {
		data, err := os.ReadFile(filepath.Join(a.Dir, name+".sealed"))
		if err != nil {
			return nil, err
		}
		return a.Crypto.Decrypt(data, binding(employeeID, periodID))
	}
	return os.ReadFile(filepath.Join(a.Dir, name))
}

func binding(employeeID, periodID string) []byte {
	return []byte(employeeID + "/" + periodID)
}

func clean(s string) string {
	s = unsafeName.ReplaceAllString(s, "-")
	if s == "" || s == "." || s == ".." {
		return "unknown"
	}
	return s
}
