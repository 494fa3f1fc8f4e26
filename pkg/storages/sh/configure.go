package sh

import (
	"net"
	"os"

	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

const (
	PortSetting           = "SSH_PORT"
	PasswordSetting       = "SSH_PASSWORD"
	UsernameSetting       = "SSH_USERNAME"
	PrivateKeyPathSetting = "SSH_PRIVATE_KEY_PATH"

	defaultPort = "22"
)

var SettingList = []string{
	PortSetting,
	PasswordSetting,
	UsernameSetting,
	PrivateKeyPathSetting,
}

// ConfigureFolder connects to prefixes like "ssh://host/path".
func ConfigureFolder(prefix string, settings map[string]string) (storage.Folder, error) {
	host, path, err := storage.ParsePrefixAsURL(prefix)
	if err != nil {
		return nil, err
	}

	config, err := clientConfig(settings)
	if err != nil {
		return nil, err
	}

	port := settings[PortSetting]
	if port == "" {
		port = defaultPort
	}
	address := net.JoinHostPort(host, port)
	sshClient, err := ssh.Dial("tcp", address, config)
	if err != nil {
		return nil, NewFolderError(err, "Fail connect via ssh. Address: %s", address)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return nil, NewFolderError(err, "Fail connect via sftp. Address: %s", address)
	}
	return NewFolder(newSftpFS(sftpClient), path), nil
}

func clientConfig(settings map[string]string) (*ssh.ClientConfig, error) {
	authMethods := []ssh.AuthMethod{}
	if keyPath := settings[PrivateKeyPathSetting]; keyPath != "" {
		key, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, NewFolderError(err, "Unable to read private key")
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, NewFolderError(err, "Unable to parse private key")
		}
		authMethods = append(authMethods, ssh.PublicKeys(signer))
	}
	if password := settings[PasswordSetting]; password != "" {
		authMethods = append(authMethods, ssh.Password(password))
	}

	return &ssh.ClientConfig{
		User:            settings[UsernameSetting],
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}, nil
}
