package db

// SchemaSQL defines the run archive table. One row per analysis run;
// headline metrics are typed columns so SurrealQL can filter and rank
// without unpacking the report blob.
const SchemaSQL = `
    DEFINE TABLE IF NOT EXISTS run SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS run_id ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS language ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS model ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS preset ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS sample_size ON run TYPE int;
    DEFINE FIELD IF NOT EXISTS status ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS passed ON run TYPE bool DEFAULT false;
    DEFINE FIELD IF NOT EXISTS lambda ON run TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS coherence_radius ON run TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS fit_quality ON run TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS kappa ON run TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS forward_mean ON run TYPE option<float>;
    DEFINE FIELD IF NOT EXISTS morphology ON run TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS report ON run TYPE string;
    DEFINE FIELD IF NOT EXISTS created ON run TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS run_run_id ON run FIELDS run_id UNIQUE;
    DEFINE INDEX IF NOT EXISTS run_language ON run FIELDS language;
    DEFINE INDEX IF NOT EXISTS run_model ON run FIELDS model;
    DEFINE INDEX IF NOT EXISTS run_created ON run FIELDS created;
`
