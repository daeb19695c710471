// Package database - Handles all interaction with ArangoDB
package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/connection"
	"github.com/cenkalti/backoff"
	"github.com/ortelius/cms-auth/internal/config"
	"go.uber.org/zap"
)

// UsersCollection is the document collection holding accounts
const UsersCollection = "users"

// DBConnection is the structure that defined the database engine and collections
type DBConnection struct {
	Collections map[string]arangodb.Collection
	Database    arangodb.Database
}

// Define a struct to hold the index definition
type indexConfig struct {
	Collection string
	IdxName    string
	IdxFields  []string
	Unique     bool
}

// indexes created at startup. The unique email index is what makes signup
// safe against two concurrent registrations of the same address.
var idxList = []indexConfig{
	{Collection: UsersCollection, IdxName: "users_email_unique", IdxFields: []string{"email"}, Unique: true},
}

func dbConnectionConfig(endpoint connection.Endpoint, dbuser string, dbpass string) connection.HttpConfiguration {
	return connection.HttpConfiguration{
		Authentication: connection.NewBasicAuth(dbuser, dbpass),
		Endpoint:       endpoint,
		ContentType:    connection.ApplicationJSON,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, // #nosec G402
			},
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 90 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// newBackOff retries the first connection until the server answers or
// maxElapsed passes. A zero maxElapsed retries forever.
func newBackOff(maxElapsed time.Duration) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = maxElapsed
	return bo
}

// InitializeDatabase connects to the db engine and creates the database,
// the users collection and its indexes when they are missing
func InitializeDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (DBConnection, error) {
	var client arangodb.Client

	//
	// Database connection with backoff retry
	//

	err := backoff.RetryNotify(func() error {
		logger.Info("Attempting to connect to ArangoDB", zap.String("url", cfg.URL))
		endpoint := connection.NewRoundRobinEndpoints([]string{cfg.URL})
		conn := connection.NewHttpConnection(dbConnectionConfig(endpoint, cfg.User, cfg.Password))

		client = arangodb.NewClient(conn)

		// Ask the version of the server
		versionInfo, err := client.Version(ctx)
		if err != nil {
			return err
		}

		logger.Sugar().Infof("Database has version '%s' and license '%s'", versionInfo.Version, versionInfo.License)
		return nil

	}, newBackOff(5*time.Minute), func(err error, wait time.Duration) {
		logger.Warn("Retrying connection to ArangoDB", zap.Error(err), zap.Duration("wait", wait))
	})
	if err != nil {
		return DBConnection{}, fmt.Errorf("failed to connect to ArangoDB: %w", err)
	}

	//
	// Database creation
	//

	db, err := ensureDatabase(ctx, client, cfg.Name)
	if err != nil {
		return DBConnection{}, err
	}

	//
	// Collection creation for document storage
	//

	collections := make(map[string]arangodb.Collection)
	for _, collectionName := range []string{UsersCollection} {
		col, err := ensureCollection(ctx, db, collectionName)
		if err != nil {
			return DBConnection{}, err
		}
		collections[collectionName] = col
	}

	//
	// Index creation for document collections
	//

	for _, idx := range idxList {
		if err := ensureIndex(ctx, collections[idx.Collection], idx); err != nil {
			return DBConnection{}, err
		}
		logger.Sugar().Infof("Index ready: %s on %s%v", idx.IdxName, idx.Collection, idx.IdxFields)
	}

	logger.Sugar().Infof("Database initialization complete for %s", cfg.Name)

	return DBConnection{
		Database:    db,
		Collections: collections,
	}, nil
}

func ensureDatabase(ctx context.Context, client arangodb.Client, name string) (arangodb.Database, error) {
	dblist, err := client.Databases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}

	exists := false
	for _, dbinfo := range dblist {
		if dbinfo.Name() == name {
			exists = true
			break
		}
	}

	if exists {
		var options arangodb.GetDatabaseOptions
		db, err := client.GetDatabase(ctx, name, &options)
		if err != nil {
			return nil, fmt.Errorf("failed to get database %s: %w", name, err)
		}
		return db, nil
	}

	db, err := client.CreateDatabase(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return db, nil
}

func ensureCollection(ctx context.Context, db arangodb.Database, name string) (arangodb.Collection, error) {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection %s: %w", name, err)
	}

	if exists {
		var options arangodb.GetCollectionOptions
		col, err := db.GetCollection(ctx, name, &options)
		if err != nil {
			return nil, fmt.Errorf("failed to use collection %s: %w", name, err)
		}
		return col, nil
	}

	col, err := db.CreateCollectionV2(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return col, nil
}

// ensureIndex is idempotent: EnsurePersistentIndex returns the existing
// index when one with the same definition is present
func ensureIndex(ctx context.Context, col arangodb.Collection, idx indexConfig) error {
	unique := idx.Unique
	sparse := false

	indexOptions := arangodb.CreatePersistentIndexOptions{
		Unique: &unique,
		Sparse: &sparse,
		Name:   idx.IdxName,
	}

	if _, _, err := col.EnsurePersistentIndex(ctx, idx.IdxFields, &indexOptions); err != nil {
		return fmt.Errorf("failed to create index %s: %w", idx.IdxName, err)
	}
	return nil
}
