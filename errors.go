package rowan

// EmptyInputError is returned from [New]
// if the block list is empty.
// A tree requires at least one leaf.
type EmptyInputError struct{}

func (EmptyInputError) Error() string {
	return "cannot build a hash tree from zero blocks"
}
