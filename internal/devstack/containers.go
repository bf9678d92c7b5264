// Package devstack starts the disposable MariaDB container used by the
// devstack command and the container-backed tests. The container is seeded
// with the embedded DDL so the API can point at it immediately.
package devstack

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/iankorovinsky/lifeos/data"
)

const (
	defaultImage        = "mariadb:11"
	defaultPort         = "3306"
	defaultRootPassword = "lifeos-root"
)

// Containers holds the running dev stack. Logf receives progress messages;
// it defaults to a no-op so test callers can stay quiet.
type Containers struct {
	Network *testcontainers.DockerNetwork
	DB      testcontainers.Container

	// HostPort is the host-mapped MariaDB port, ready for DB_HOST=localhost.
	HostPort string

	logf func(format string, args ...any)
}

func (dc *Containers) Terminate(ctx context.Context) {
	if dc.DB != nil {
		if err := dc.DB.Terminate(ctx); err != nil {
			dc.logf("failed to terminate MariaDB: %v", err)
		}
	}
	if dc.Network != nil {
		if err := dc.Network.Remove(ctx); err != nil {
			dc.logf("failed to remove network: %v", err)
		}
	}
}

// Start brings up a MariaDB container on its own network, creates the app
// database and user, and applies the embedded schema. Environment variables
// DB_IMAGE, DB_PORT, DB_ROOT_PASSWORD, DB_DATABASE, DB_USER and DB_PASSWORD
// override the defaults.
func Start(ctx context.Context, logf func(format string, args ...any)) (*Containers, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := dockerAvailable(ctx); err != nil {
		return nil, fmt.Errorf("docker is not available: %w", err)
	}

	dc := &Containers{logf: logf}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	dc.Network = nw

	tcpPort, err := nat.NewPort("tcp", envOr("DB_PORT", defaultPort))
	if err != nil {
		dc.Terminate(ctx)
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	rootPassword := envOr("DB_ROOT_PASSWORD", defaultRootPassword)
	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", defaultImage),
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": rootPassword,
				"MYSQL_DATABASE":      envOr("DB_DATABASE", "lifeos"),
				"MYSQL_USER":          envOr("DB_USER", "lifeos"),
				"MYSQL_PASSWORD":      envOr("DB_PASSWORD", "lifeos"),
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {"mariadb"},
			},
		},
		Started: true,
	})
	if err != nil {
		dc.Terminate(ctx)
		return nil, fmt.Errorf("failed to start MariaDB: %w", err)
	}
	dc.DB = dbContainer

	host, err := dbContainer.Host(ctx)
	if err != nil {
		dc.Terminate(ctx)
		return nil, err
	}
	mapped, err := dbContainer.MappedPort(ctx, tcpPort)
	if err != nil {
		dc.Terminate(ctx)
		return nil, err
	}
	dc.HostPort = mapped.Port()

	if err := initDatabase(host, mapped.Port(), rootPassword); err != nil {
		dc.Terminate(ctx)
		return nil, err
	}

	logf("MariaDB ready at %s:%s", host, mapped.Port())
	return dc, nil
}

func initDatabase(host, port, rootPassword string) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/%s", rootPassword, host, port, envOr("DB_DATABASE", "lifeos")))
	if err != nil {
		return fmt.Errorf("failed to connect to MariaDB for setup: %w", err)
	}
	defer db.Close()

	// The listening port opens before the server accepts logins.
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("failed to apply tables DDL: %w", err)
	}
	if err := executeSQL(db, data.InitdbMariaDBPrivileges); err != nil {
		return fmt.Errorf("failed to apply privileges DDL: %w", err)
	}
	return nil
}

// executeSQL runs each semicolon-terminated statement in script. Line
// comments are stripped first; the DDL keeps string literals off comment
// lines so a plain prefix scan is enough.
func executeSQL(db *sql.DB, script string) error {
	var clean []string
	for _, line := range strings.Split(script, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		clean = append(clean, line)
	}
	statements := strings.Split(strings.Join(clean, "\n"), ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}

func dockerAvailable(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()
	_, err = cli.Ping(ctx)
	return err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
