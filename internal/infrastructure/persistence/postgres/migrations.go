package postgres

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// Schema of the learning catalog and the enrollment engine. The
// topic_completion table carries the UNIQUE (learner_id, topic_id)
// constraint the idempotent assignment path relies on.
// ══════════════════════════════════════════════════════════════════════════════

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_catalog",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_learners",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_topic_completion",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS subjects (
	id BIGSERIAL PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS topics (
	id BIGSERIAL PRIMARY KEY,
	subject_id BIGINT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	video_url TEXT
);

CREATE INDEX IF NOT EXISTS idx_topics_subject_id ON topics(subject_id);
`

const migration001Down = `
DROP TABLE IF EXISTS topics;
DROP TABLE IF EXISTS subjects;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS learners (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL
);
`

const migration002Down = `
DROP TABLE IF EXISTS learners;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS topic_completion (
	id BIGSERIAL PRIMARY KEY,
	learner_id BIGINT NOT NULL REFERENCES learners(id) ON DELETE CASCADE,
	topic_id BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
	subject_id BIGINT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
	completed BOOLEAN NOT NULL DEFAULT FALSE,
	progress INTEGER NOT NULL DEFAULT 0,
	CONSTRAINT topic_completion_learner_topic_key UNIQUE (learner_id, topic_id)
);

CREATE INDEX IF NOT EXISTS idx_topic_completion_learner_id ON topic_completion(learner_id);
CREATE INDEX IF NOT EXISTS idx_topic_completion_topic_id ON topic_completion(topic_id);
`

const migration003Down = `
DROP TABLE IF EXISTS topic_completion;
`
