package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"securebank/internal/models"
)

// StateStore persists the session across restarts: the user record as a JSON
// file and the auth token obfuscated with AES-GCM. Not a replacement for OS
// keychains but avoids a plain-text token on disk.
type StateStore struct {
	dir string
}

const (
	userFile  = "user.json"
	tokenFile = "auth.json"
)

// NewStateStore uses the per-user config directory.
func NewStateStore() (*StateStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStateStoreAt(filepath.Join(dir, "securebank")), nil
}

// NewStateStoreAt roots the store at an explicit directory (used by tests).
func NewStateStoreAt(dir string) *StateStore {
	return &StateStore{dir: dir}
}

// SaveUser writes the user record atomically.
func (s *StateStore) SaveUser(u models.User) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(filepath.Join(s.dir, userFile), data)
}

// LoadUser returns the persisted user, or nil if none is stored.
func (s *StateStore) LoadUser() (*models.User, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type tokenEnvelope struct {
	Token string `json:"token"` // base64(ciphertext)
}

// SaveToken stores the bearer token.
func (s *StateStore) SaveToken(token string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenEnvelope{Token: base64.StdEncoding.EncodeToString(ct)}, "", "  ")
	if err != nil {
		return err
	}
	return atomicWrite(filepath.Join(s.dir, tokenFile), data)
}

// LoadToken returns the persisted token, or "" if none is stored.
func (s *StateStore) LoadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	var env tokenEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(env.Token)
	if err != nil {
		return "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// Clear removes all persisted session state. Missing files are not an error.
func (s *StateStore) Clear() error {
	var firstErr error
	for _, name := range []string{userFile, tokenFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *StateStore) ensureDir() error {
	return os.MkdirAll(s.dir, 0o700)
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func masterKey() []byte {
	user := os.Getenv("USER")
	base := fmt.Sprintf("securebank-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
