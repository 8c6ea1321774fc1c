package validation

// CourseSchema is the rule set for create and update bodies.
var CourseSchema = Schema{
	Rules: []Rule{
		{Field: "name", Type: TypeString, MinLength: 3, Required: true},
	},
}

// CourseInput is a course payload that passed CourseSchema.
type CourseInput struct {
	Name string
}

// ValidateCourse checks an untyped create/update body.
func ValidateCourse(p Payload) (CourseInput, error) {
	valid, err := CourseSchema.Validate(p)
	if err != nil {
		return CourseInput{}, err
	}

	name, _ := valid["name"].(string)
	return CourseInput{Name: name}, nil
}
