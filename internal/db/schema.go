package db

var schema = []string{
	// -------------------------------
	// USERS + PROFILES
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'USER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		user_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		full_name TEXT,
		email TEXT,
		phone TEXT,
		date_of_birth DATE,
		medical_conditions TEXT[],
		allergies TEXT[],
		emergency_contact_name TEXT,
		emergency_contact_phone TEXT,
		notification_preferences JSONB,
		avatar_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// -------------------------------
	// MEDICINE CATALOGUE
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS medicines (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		manufacturer_name TEXT,
		price NUMERIC(10,2),
		type TEXT,
		pack_size_label TEXT,
		short_composition1 TEXT,
		short_composition2 TEXT,
		is_discontinued BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medicines_name ON medicines (lower(name))`,

	// -------------------------------
	// SCANS / SEARCHES / FAVORITES
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS medicine_scans (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		image_url TEXT,
		extracted_text TEXT,
		detected_medicine_name TEXT,
		confidence_score DOUBLE PRECISION,
		generic_suggestions JSONB,
		price_savings DOUBLE PRECISION,
		scan_timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scans_user ON medicine_scans (user_id, scan_timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS medicine_searches (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		search_query TEXT NOT NULL,
		medicine_found JSONB,
		generic_alternatives JSONB,
		search_timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_searches_user ON medicine_searches (user_id, search_timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS medicine_favorites (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		medicine_name TEXT NOT NULL,
		medicine_details JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	// -------------------------------
	// REMINDERS
	// -------------------------------
	`CREATE TABLE IF NOT EXISTS reminders (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		medicine_name TEXT NOT NULL,
		dosage TEXT NOT NULL,
		frequency TEXT NOT NULL,
		reminder_type TEXT,
		specific_times TEXT[],
		start_date DATE NOT NULL,
		end_date DATE,
		is_active BOOLEAN NOT NULL DEFAULT true,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_active ON reminders (is_active, start_date)`,
	`CREATE TABLE IF NOT EXISTS reminder_logs (
		id UUID PRIMARY KEY,
		reminder_id UUID NOT NULL REFERENCES reminders(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		scheduled_time TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		taken_at TIMESTAMPTZ,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (reminder_id, scheduled_time)
	)`,
}
