package catalog

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/zbierak/ipa/internal/model"
)

const (
	photoTable    = "ZGENERICASSET"
	albumTable    = "ZGENERICALBUM"
	userAlbumKind = 2
)

// Catalog holds everything extracted from one device's photo-metadata
// database: the device's display name, its host root path, and the
// album/photo graph loaded from the database at construction time.
//
// A Catalog is immutable and safe for concurrent read access once Open
// returns successfully.
type Catalog struct {
	deviceName string
	rootPath   string

	mu     sync.RWMutex
	albums map[string]*model.Album
}

// Open opens dbFilePath read-only, probes its schema, loads the album/photo
// graph and returns the resulting Catalog. deviceName and deviceRootPath are
// supplied by the caller (see internal/devsource) and are not derived from
// the database itself.
func Open(dbFilePath, deviceName, deviceRootPath string) (*Catalog, error) {
	if _, err := os.Stat(dbFilePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dbFilePath)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", dbFilePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOpen, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatabaseOpen, err)
	}

	assetsTable, err := discoverAssetsTable(db)
	if err != nil {
		return nil, err
	}

	albumFK, photoFK, err := discoverForeignKeys(db, assetsTable)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		deviceName: deviceName,
		rootPath:   deviceRootPath,
		albums:     make(map[string]*model.Album),
	}
	if err := cat.load(db, assetsTable, albumFK, photoFK); err != nil {
		return nil, err
	}
	return cat, nil
}

// discoverAssetsTable finds the single table whose name ends in "ASSETS".
func discoverAssetsTable(db *sql.DB) (string, error) {
	rows, err := db.Query(`select name from sqlite_master where type = 'table' and name like '%ASSETS'`)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSchemaUnknown, err)
	}
	defer rows.Close()

	var candidates []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("%w: %w", ErrSchemaUnknown, err)
		}
		candidates = append(candidates, name)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSchemaUnknown, err)
	}

	switch len(candidates) {
	case 0:
		return "", ErrSchemaUnknown
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w: candidates %v", ErrSchemaAmbiguous, candidates)
	}
}

// discoverForeignKeys scans the assets table's columns for the album and
// photo foreign keys, using the same substring heuristics as the original
// schema probe: a column containing "ALBUMS" is the album FK; a column
// containing "ASSETS" but not "FOK" is the photo FK.
func discoverForeignKeys(db *sql.DB, assetsTable string) (albumFK, photoFK string, err error) {
	rows, err := db.Query(fmt.Sprintf(`pragma table_info('%s')`, assetsTable))
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSchemaUnknown, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull int
		var dfltValue sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrSchemaUnknown, err)
		}

		upper := strings.ToUpper(name)
		if albumFK == "" && strings.Contains(upper, "ALBUMS") {
			albumFK = name
			continue
		}
		if photoFK == "" && strings.Contains(upper, "ASSETS") && !strings.Contains(upper, "FOK") {
			photoFK = name
		}
	}
	if err := rows.Err(); err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSchemaUnknown, err)
	}

	if albumFK == "" || photoFK == "" {
		return "", "", ErrSchemaUnknown
	}
	return albumFK, photoFK, nil
}

// load runs the extraction join and populates the catalog's albums.
func (c *Catalog) load(db *sql.DB, assetsTable, albumFK, photoFK string) error {
	query := fmt.Sprintf(`
		select P.ZFILENAME, P.ZDIRECTORY, A.ZTITLE
		from %s P
		inner join %s X on P.Z_PK = X.%s
		inner join %s A on X.%s = A.Z_PK
		where A.ZKIND = ?
	`, photoTable, assetsTable, photoFK, albumTable, albumFK)

	rows, err := db.Query(query, userAlbumKind)
	if err != nil {
		return fmt.Errorf("catalog: extraction query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fileName, directory, albumTitle string
		if err := rows.Scan(&fileName, &directory, &albumTitle); err != nil {
			return fmt.Errorf("catalog: extraction row scan failed: %w", err)
		}

		photo, err := model.NewPhoto(fileName, directory)
		if err != nil {
			log.Printf("ipa: catalog %q: skipping malformed photo row (%s, %s): %v", c.deviceName, fileName, directory, err)
			continue
		}

		album := c.albums[albumTitle]
		if album == nil {
			album, err = model.NewAlbum(albumTitle)
			if err != nil {
				log.Printf("ipa: catalog %q: skipping malformed album %q: %v", c.deviceName, albumTitle, err)
				continue
			}
			c.albums[albumTitle] = album
		}
		album.Add(photo)
	}
	return rows.Err()
}

// DeviceName is the catalog's inherited device display name (before any
// registry-level uniqueness suffix is applied).
func (c *Catalog) DeviceName() string {
	return c.deviceName
}

// RootPath is the host path under which the device's backing files are
// reachable.
func (c *Catalog) RootPath() string {
	return c.rootPath
}

// GetAlbumByName looks up an album by its exact name.
func (c *Catalog) GetAlbumByName(name string) (*model.Album, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	album, ok := c.albums[name]
	if !ok {
		return nil, ErrAlbumNotFound
	}
	return album, nil
}

// ForEachAlbum invokes cb for every album until cb returns false. Iteration
// order is unspecified.
func (c *Catalog) ForEachAlbum(cb func(*model.Album) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, album := range c.albums {
		if !cb(album) {
			return
		}
	}
}

// AlbumCount reports the number of albums loaded (used by "ipa devices").
func (c *Catalog) AlbumCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.albums)
}
