package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Countries universities belong to
CREATE TABLE IF NOT EXISTS country (
    country_id INTEGER PRIMARY KEY AUTOINCREMENT,
    country_name TEXT NOT NULL
);

-- Degree-granting institutions
CREATE TABLE IF NOT EXISTS university (
    university_id INTEGER PRIMARY KEY AUTOINCREMENT,
    university_name TEXT NOT NULL,
    country_id INTEGER,
    FOREIGN KEY (country_id) REFERENCES country(country_id)
        ON UPDATE CASCADE ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_university_name ON university(university_name);

-- MSC subject codes; subject_code is the natural key from the MSC scheme
CREATE TABLE IF NOT EXISTS mathematics_subject_classification (
    subject_code INTEGER PRIMARY KEY,
    subject_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dissertation (
    dissertation_id INTEGER PRIMARY KEY AUTOINCREMENT,
    dissertation_title TEXT,
    dissertation_year INTEGER,
    subject_code INTEGER,
    university_id INTEGER,
    FOREIGN KEY (subject_code) REFERENCES mathematics_subject_classification(subject_code)
        ON UPDATE CASCADE ON DELETE RESTRICT,
    FOREIGN KEY (university_id) REFERENCES university(university_id)
        ON UPDATE CASCADE ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_dissertation_year ON dissertation(dissertation_year);

-- mathematician_id is the genealogy site's record number, never autoincremented
CREATE TABLE IF NOT EXISTS mathematician (
    mathematician_id INTEGER PRIMARY KEY,
    mathematician_name TEXT NOT NULL,
    birth_date DATE,
    death_date DATE,
    dissertation_id INTEGER,
    FOREIGN KEY (dissertation_id) REFERENCES dissertation(dissertation_id)
        ON UPDATE CASCADE ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_mathematician_birth ON mathematician(birth_date);
CREATE INDEX IF NOT EXISTS idx_mathematician_death ON mathematician(death_date);

-- Advisor/advisee pairs: many-to-many self-join on mathematician
CREATE TABLE IF NOT EXISTS advisor_relationship (
    advisor_id INTEGER NOT NULL,
    advisee_id INTEGER NOT NULL,
    FOREIGN KEY (advisor_id) REFERENCES mathematician(mathematician_id)
        ON UPDATE CASCADE ON DELETE RESTRICT,
    FOREIGN KEY (advisee_id) REFERENCES mathematician(mathematician_id)
        ON UPDATE CASCADE ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_advisor_relationship_advisor ON advisor_relationship(advisor_id);
CREATE INDEX IF NOT EXISTS idx_advisor_relationship_advisee ON advisor_relationship(advisee_id);

-- Hosts pages were collected from
CREATE TABLE IF NOT EXISTS web_source (
    web_source_id INTEGER PRIMARY KEY AUTOINCREMENT,
    base_url TEXT NOT NULL UNIQUE
);

-- Pages under a source, split into path and query components
CREATE TABLE IF NOT EXISTS webpage (
    webpage_id INTEGER PRIMARY KEY AUTOINCREMENT,
    web_source_id INTEGER NOT NULL,
    path TEXT NOT NULL,
    query TEXT,
    timestamp TIMESTAMP,
    FOREIGN KEY (web_source_id) REFERENCES web_source(web_source_id)
        ON UPDATE CASCADE ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_webpage_source ON webpage(web_source_id);

-- Outbound links on a record page; rows follow their mathematician on delete
CREATE TABLE IF NOT EXISTS math_genealogy_associated_link (
    mathematician_id INTEGER NOT NULL,
    webpage_id INTEGER NOT NULL,
    href_text TEXT,
    FOREIGN KEY (mathematician_id) REFERENCES mathematician(mathematician_id)
        ON UPDATE CASCADE ON DELETE CASCADE,
    FOREIGN KEY (webpage_id) REFERENCES webpage(webpage_id)
        ON UPDATE CASCADE ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_associated_link_mathematician ON math_genealogy_associated_link(mathematician_id);
CREATE INDEX IF NOT EXISTS idx_associated_link_webpage ON math_genealogy_associated_link(webpage_id);
`
