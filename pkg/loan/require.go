package loan

// Require returns err when the condition does not hold
func Require(condition bool, err error) error {
	if condition {
		return nil
	}

	return err
}
