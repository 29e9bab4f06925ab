// Package store persists generated sectors in PostgreSQL.
package store

import (
	"context"
	"image"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/citylots"
)

// ErrNotFound is returned when no sector is stored for the given key
var ErrNotFound = errors.New("sector not found")

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Store.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// SaveSector stores `sec` in a single transaction, replacing anything
// previously stored for the same seed & coords.
func (s *Store) SaveSector(ctx context.Context, sec *citylots.Sector) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`DELETE FROM sectors WHERE seed = $1 AND x = $2 AND z = $3`,
		sec.Seed, sec.X, sec.Z,
	); err != nil {
		return errors.Wrap(err, "delete old sector")
	}

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO sectors (seed, x, z, min_x, min_z, max_x, max_z, stats)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING id`,
		sec.Seed, sec.X, sec.Z,
		sec.Bounds.Min.X, sec.Bounds.Min.Y, sec.Bounds.Max.X, sec.Bounds.Max.Y,
		sec.Stats,
	).Scan(&id); err != nil {
		return errors.Wrap(err, "insert sector")
	}

	// rows referenced by later rows are queued first
	batch := &pgx.Batch{}
	for i, site := range sec.Sites {
		batch.Queue(
			`INSERT INTO sites (sector_id, idx, x, z, radius) VALUES ($1,$2,$3,$4,$5)`,
			id, i, site.Position.X, site.Position.Y, site.Radius,
		)
	}
	for i, city := range sec.Cities {
		batch.Queue(
			`INSERT INTO cities (sector_id, idx, name, centre_x, centre_z, radius) VALUES ($1,$2,$3,$4,$5,$6)`,
			id, i, city.Name, city.Centre.X, city.Centre.Y, city.Radius,
		)
		for j, lot := range city.Lots {
			batch.Queue(
				`INSERT INTO lots (sector_id, city_idx, idx, min_x, min_z, max_x, max_z) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				id, i, j, lot.Area.Min.X, lot.Area.Min.Y, lot.Area.Max.X, lot.Area.Max.Y,
			)
		}
	}
	for _, j := range sec.Junctions {
		batch.Queue(
			`INSERT INTO junctions (sector_id, id, x, z) VALUES ($1,$2,$3,$4)`,
			id, j.ID, j.Coords.X, j.Coords.Y,
		)
	}
	for i, road := range sec.Roads {
		xs, zs := splitCoords(road.Waypoints)
		batch.Queue(
			`INSERT INTO roads (sector_id, idx, start_id, end_id, width, waypoints_x, waypoints_z)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			id, i, road.Start.ID, road.End.ID, road.Width, xs, zs,
		)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close() //nolint:errcheck
				return errors.Wrapf(err, "save sector %d,%d batch", sec.X, sec.Z)
			}
		}
		if err := br.Close(); err != nil {
			return errors.Wrap(err, "close sector batch")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

// LoadSector returns the sector stored for seed & coords, or ErrNotFound.
func (s *Store) LoadSector(ctx context.Context, seed string, x, z int) (*citylots.Sector, error) {
	sec := &citylots.Sector{
		X:         x,
		Z:         z,
		Seed:      seed,
		Sites:     []citylots.Site{},
		Cities:    []*citylots.City{},
		Roads:     []*citylots.Road{},
		Junctions: []*citylots.Junction{},
	}

	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id, min_x, min_z, max_x, max_z, stats FROM sectors
		 WHERE seed = $1 AND x = $2 AND z = $3`,
		seed, x, z,
	).Scan(&id, &sec.Bounds.Min.X, &sec.Bounds.Min.Y, &sec.Bounds.Max.X, &sec.Bounds.Max.Y, &sec.Stats)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query sector")
	}

	if err := s.loadSites(ctx, id, sec); err != nil {
		return nil, err
	}
	if err := s.loadCities(ctx, id, sec); err != nil {
		return nil, err
	}
	if err := s.loadRoads(ctx, id, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Store) loadSites(ctx context.Context, id int64, sec *citylots.Sector) error {
	rows, err := s.pool.Query(ctx,
		`SELECT x, z, radius FROM sites WHERE sector_id = $1 ORDER BY idx`, id,
	)
	if err != nil {
		return errors.Wrap(err, "query sites")
	}
	defer rows.Close()

	for rows.Next() {
		var site citylots.Site
		if err := rows.Scan(&site.Position.X, &site.Position.Y, &site.Radius); err != nil {
			return errors.Wrap(err, "scan site")
		}
		sec.Sites = append(sec.Sites, site)
	}
	return errors.Wrap(rows.Err(), "iterate sites")
}

func (s *Store) loadCities(ctx context.Context, id int64, sec *citylots.Sector) error {
	rows, err := s.pool.Query(ctx,
		`SELECT name, centre_x, centre_z, radius FROM cities WHERE sector_id = $1 ORDER BY idx`, id,
	)
	if err != nil {
		return errors.Wrap(err, "query cities")
	}
	for rows.Next() {
		city := &citylots.City{Lots: []*citylots.Lot{}}
		if err := rows.Scan(&city.Name, &city.Centre.X, &city.Centre.Y, &city.Radius); err != nil {
			rows.Close()
			return errors.Wrap(err, "scan city")
		}
		sec.Cities = append(sec.Cities, city)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "iterate cities")
	}

	rows, err = s.pool.Query(ctx,
		`SELECT city_idx, min_x, min_z, max_x, max_z FROM lots WHERE sector_id = $1 ORDER BY city_idx, idx`, id,
	)
	if err != nil {
		return errors.Wrap(err, "query lots")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cityIdx int
			area    image.Rectangle
		)
		if err := rows.Scan(&cityIdx, &area.Min.X, &area.Min.Y, &area.Max.X, &area.Max.Y); err != nil {
			return errors.Wrap(err, "scan lot")
		}
		if cityIdx < 0 || cityIdx >= len(sec.Cities) {
			return errors.Errorf("lot references unknown city %d", cityIdx)
		}
		city := sec.Cities[cityIdx]
		city.Lots = append(city.Lots, &citylots.Lot{Area: area})
	}
	return errors.Wrap(rows.Err(), "iterate lots")
}

func (s *Store) loadRoads(ctx context.Context, id int64, sec *citylots.Sector) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, x, z FROM junctions WHERE sector_id = $1 ORDER BY id`, id,
	)
	if err != nil {
		return errors.Wrap(err, "query junctions")
	}
	byID := map[int]*citylots.Junction{}
	for rows.Next() {
		j := &citylots.Junction{}
		if err := rows.Scan(&j.ID, &j.Coords.X, &j.Coords.Y); err != nil {
			rows.Close()
			return errors.Wrap(err, "scan junction")
		}
		byID[j.ID] = j
		sec.Junctions = append(sec.Junctions, j)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "iterate junctions")
	}

	rows, err = s.pool.Query(ctx,
		`SELECT start_id, end_id, width, waypoints_x, waypoints_z FROM roads WHERE sector_id = $1 ORDER BY idx`, id,
	)
	if err != nil {
		return errors.Wrap(err, "query roads")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			startID, endID int
			road           citylots.Road
			xs, zs         []float64
		)
		if err := rows.Scan(&startID, &endID, &road.Width, &xs, &zs); err != nil {
			return errors.Wrap(err, "scan road")
		}
		road.Start, road.End = byID[startID], byID[endID]
		if road.Start == nil || road.End == nil {
			return errors.Errorf("road references unknown junction %d or %d", startID, endID)
		}
		road.Waypoints, err = joinCoords(xs, zs)
		if err != nil {
			return err
		}
		sec.Roads = append(sec.Roads, &road)
	}
	return errors.Wrap(rows.Err(), "iterate roads")
}

// splitCoords splits coords into parallel x & z arrays for storage
func splitCoords(in []model2d.Coord) ([]float64, []float64) {
	xs := make([]float64, len(in))
	zs := make([]float64, len(in))
	for i, c := range in {
		xs[i], zs[i] = c.X, c.Y
	}
	return xs, zs
}

// joinCoords is the inverse of splitCoords
func joinCoords(xs, zs []float64) ([]model2d.Coord, error) {
	if len(xs) != len(zs) {
		return nil, errors.Errorf("waypoint arrays differ in length: %d != %d", len(xs), len(zs))
	}
	out := make([]model2d.Coord, len(xs))
	for i := range xs {
		out[i] = model2d.Coord{X: xs[i], Y: zs[i]}
	}
	return out, nil
}
