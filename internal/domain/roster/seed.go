package roster

// Seed returns the default roster used on first run and whenever the
// persisted roster record is missing or unreadable.
func Seed() []*Student {
	names := []string{
		"Amelia Clarke",
		"Ben Osei",
		"Chloe Nguyen",
		"Daniel Price",
		"Eva Kowalski",
		"Freya MacDonald",
	}

	students := make([]*Student, 0, len(names))
	for i, name := range names {
		st, err := NewStudent(seedID(i), name, 0)
		if err != nil {
			continue
		}
		students = append(students, st)
	}
	return students
}

// seedID produces stable ids for the seed roster so a reseeded session
// lines up with vouchers issued before the roster record was lost.
func seedID(i int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	return "seed-" + string(alphabet[i%len(alphabet)]) + "0"
}
