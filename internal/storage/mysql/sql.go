package mysql

// Mirrors migrations/001_hold_releases.sql.
const createHoldReleasesSQL = `
CREATE TABLE IF NOT EXISTS hold_releases (
  id          BIGINT AUTO_INCREMENT PRIMARY KEY,
  run_id      CHAR(36)     NOT NULL,
  relacion_id BIGINT       NOT NULL,
  reserva_id  BIGINT       NOT NULL,
  espacio_id  BIGINT       NOT NULL,
  outcome     VARCHAR(16)  NOT NULL,
  detail      VARCHAR(512) NULL,
  created_at  DATETIME(3)  NOT NULL,
  KEY idx_hold_releases_created (created_at),
  KEY idx_hold_releases_run (run_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const insertHoldReleaseSQL = `
INSERT INTO hold_releases
  (run_id, relacion_id, reserva_id, espacio_id, outcome, detail, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// id breaks ties between rows written in the same millisecond.
const listHoldReleasesSQL = `
SELECT run_id, relacion_id, reserva_id, espacio_id, outcome, detail, created_at
FROM hold_releases
ORDER BY created_at DESC, id DESC
LIMIT ?
`
