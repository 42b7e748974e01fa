package convertly

// DefaultTimeLayout is the layout used for time parsing and formatting
// when no layout is configured.
const DefaultTimeLayout = "2006-01-02 15:04:05.000"

// DefaultDelimiter separates elements when converting between text and
// collections.
const DefaultDelimiter = ","

type options struct {
	delimiter  string
	timeLayout string
	unboxing   bool
}

func defaultOptions() options {
	return options{
		delimiter:  DefaultDelimiter,
		timeLayout: DefaultTimeLayout,
		unboxing:   true,
	}
}

// Option customizes a Service.
type Option func(*options)

// WithDelimiter sets the element delimiter for text to collection and
// collection to text conversion.
func WithDelimiter(delimiter string) Option {
	return func(o *options) { o.delimiter = delimiter }
}

// WithTimeLayout sets the layout for time parsing and formatting.
func WithTimeLayout(layout string) Option {
	return func(o *options) { o.timeLayout = layout }
}

// WithUnboxing controls whether a size-1 collection converts back to
// its single element. Enabled by default; a collection of any other
// size never converts to a scalar.
func WithUnboxing(enabled bool) Option {
	return func(o *options) { o.unboxing = enabled }
}
