package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/svcsuite/secutils/errors"
)

// DefaultSecretsDir is the project-relative directory scanned by
// LoadSecrets when no directory is given.
const DefaultSecretsDir = ".secrets"

// envDockerFlag, when set, makes a missing secrets directory non-fatal.
// Container deployments inject configuration through the environment
// instead of .env files.
const envDockerFlag = "ISDOCKER"

// Required returns the value of the named environment variable. The name
// is upper-cased before lookup. A variable set to the empty string is
// accepted as present; only an unset variable fails, with
// *errors.MissingEnvVariableError.
func Required(name string) (string, error) {
	value, ok := os.LookupEnv(strings.ToUpper(name))
	if !ok {
		return "", errors.NewMissingEnvVariableError(strings.ToUpper(name))
	}
	return value, nil
}

// LoadSecrets loads every *.env file found in the given directory,
// resolved relative to the project root, into the process environment.
// Variables already set in the environment are never overwritten by
// file-loaded values, so re-running LoadSecrets is idempotent and
// explicit configuration always wins over files.
//
// Files are loaded in lexical order; because set variables are not
// overwritten, the first file to define a key wins.
//
// A missing directory is an error unless the ISDOCKER environment
// variable is set.
func LoadSecrets(dir string) error {
	if dir == "" {
		dir = DefaultSecretsDir
	}

	secretsDir := dir
	if !filepath.IsAbs(secretsDir) {
		root, err := ProjectRoot()
		if err != nil {
			return err
		}
		secretsDir = filepath.Join(root, dir)
	}

	info, err := os.Stat(secretsDir)
	if err != nil || !info.IsDir() {
		if _, ok := os.LookupEnv(envDockerFlag); ok {
			return nil
		}
		return errors.NewConfigurationError("env.LoadSecrets", "secrets dir",
			fmt.Sprintf("%s does not exist or is not a directory", secretsDir))
	}

	entries, err := os.ReadDir(secretsDir)
	if err != nil {
		return errors.NewConfigurationError("env.LoadSecrets", "secrets dir", "unreadable").WithCause(err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".env") {
			continue
		}
		path := filepath.Join(secretsDir, entry.Name())
		// godotenv.Load never overwrites variables that are already set.
		if err := godotenv.Load(path); err != nil {
			return errors.NewConfigurationError("env.LoadSecrets", entry.Name(), "failed to load").WithCause(err)
		}
	}
	return nil
}

// ProjectEnvironment returns the value of the first set variable among
// the given aliases (defaults: PROJECT_ENVIRONMENT, ENVIRONMENT). All
// aliases are upper-cased before lookup. If none is set it fails with
// *errors.ProjectEnvironmentError.
func ProjectEnvironment(aliases ...string) (string, error) {
	if len(aliases) == 0 {
		aliases = []string{"PROJECT_ENVIRONMENT", "ENVIRONMENT"}
	}
	checked := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		name := strings.ToUpper(alias)
		checked = append(checked, name)
		if value, ok := os.LookupEnv(name); ok {
			return value, nil
		}
	}
	return "", errors.NewProjectEnvironmentError(checked)
}
