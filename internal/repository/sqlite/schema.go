package sqlite

// schemaStatements is the full schema, applied in order at startup.
// Slugs carry UNIQUE indexes: they are the public identifiers and the
// last line of defense against derivation races.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'USER',
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		slug        TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		type        TEXT NOT NULL,
		created_at  TIMESTAMP NOT NULL,
		updated_at  TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		slug       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS articles (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		slug         TEXT NOT NULL UNIQUE,
		content      TEXT NOT NULL,
		excerpt      TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'DRAFT',
		featured     INTEGER NOT NULL DEFAULT 0,
		author_id    TEXT NOT NULL REFERENCES users(id),
		category_id  TEXT REFERENCES categories(id),
		published_at TIMESTAMP,
		created_at   TIMESTAMP NOT NULL,
		updated_at   TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS article_tags (
		article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		tag_id     TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (article_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		slug           TEXT NOT NULL UNIQUE,
		description    TEXT NOT NULL DEFAULT '',
		content        TEXT NOT NULL DEFAULT '',
		price          REAL NOT NULL DEFAULT 0,
		images         TEXT NOT NULL DEFAULT '[]',
		specifications TEXT NOT NULL DEFAULT '{}',
		status         TEXT NOT NULL DEFAULT 'ACTIVE',
		featured       INTEGER NOT NULL DEFAULT 0,
		author_id      TEXT NOT NULL REFERENCES users(id),
		category_id    TEXT REFERENCES categories(id),
		created_at     TIMESTAMP NOT NULL,
		updated_at     TIMESTAMP NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_articles_status_created ON articles(status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_status_created ON products(status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_article_tags_tag ON article_tags(tag_id)`,
}
