package quota

const (
	queryGetUsage = `
		SELECT
			COALESCE(daily_usage->>'date', ''),
			COALESCE((daily_usage->>'count')::int, 0),
			(daily_usage->>'lastGenerated')::timestamptz
		FROM users
		WHERE id = $1
	`

	// the row lock taken by UPDATE serializes concurrent increments
	queryIncrementUsage = `
		UPDATE users
		SET daily_usage = jsonb_build_object(
				'date', $2::text,
				'count', CASE
					WHEN daily_usage->>'date' = $2::text THEN COALESCE((daily_usage->>'count')::int, 0) + 1
					ELSE 1
				END,
				'lastGenerated', $3::timestamptz
			),
			updated_at = NOW()
		WHERE id = $1
		RETURNING (daily_usage->>'count')::int
	`

	queryGetRegistration = `
		SELECT registration_number, registered_at
		FROM users
		WHERE id = $1 AND registration_number IS NOT NULL
	`

	// a concurrent registration racing for the same number fails the unique
	// constraint and is retried
	queryRegister = `
		UPDATE users
		SET registration_number = (SELECT COALESCE(MAX(registration_number), 0) + 1 FROM users),
			registered_at = $2,
			updated_at = NOW()
		WHERE id = $1
			AND registration_number IS NULL
			AND (SELECT COUNT(*) FROM users WHERE registration_number IS NOT NULL) < $3
		RETURNING registration_number, registered_at
	`
)
