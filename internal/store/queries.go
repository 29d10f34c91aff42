package store

// SQL queries used by PostgresStore.
const (
	// Sales

	queryFindCandidateSales = baseSalesSelect + `
		WHERE code_postal = $1 AND lower(btrim(type_local)) = lower(btrim($2))`

	queryDeleteSales = `DELETE FROM dvf_sales`

	queryCorpusStats = `
		SELECT COUNT(*),
			COUNT(DISTINCT code_postal),
			COUNT(*) FILTER (WHERE valeur_fonciere IS NULL),
			COUNT(*) FILTER (WHERE surface_reelle_bati IS NULL),
			MIN(date_mutation),
			MAX(date_mutation)
		FROM dvf_sales`

	// Import runs

	queryInsertImportRun = `
		INSERT INTO import_runs (source)
		VALUES ($1)
		RETURNING id`

	queryCompleteImportRun = `
		UPDATE import_runs SET
			completed_at  = now(),
			status        = $2,
			error_text    = NULLIF($3, ''),
			rows_affected = $4
		WHERE id = $1`

	queryListImportRuns = `
		SELECT id, source, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT $1`

	queryMarkStaleImportRunsFailed = `
		UPDATE import_runs SET
			status       = 'failed',
			error_text   = 'interrupted',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldImportRuns = `
		DELETE FROM import_runs WHERE started_at < now() - interval '90 days'`

	// Import lock

	queryAcquireImportLock = `
		INSERT INTO import_locks (lock_name, lock_holder, expires_at)
		VALUES ('import', $1, $2)
		ON CONFLICT (lock_name) DO UPDATE
			SET locked_at   = now(),
				lock_holder = EXCLUDED.lock_holder,
				expires_at  = EXCLUDED.expires_at
			WHERE import_locks.expires_at < now()
				OR import_locks.lock_holder = EXCLUDED.lock_holder
		RETURNING lock_name`

	queryReleaseImportLock = `
		DELETE FROM import_locks WHERE lock_name = 'import' AND lock_holder = $1`
)
