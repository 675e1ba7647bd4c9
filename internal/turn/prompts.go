package turn

// Temperature is the fixed sampling temperature for every model call.
// Grounded answering wants determinism, not creativity.
const Temperature = 0.1

// SourcesMarker separates the answer body from the citation list in the raw
// model output. The system instruction below requires the model to emit it
// at the end of every reply.
const SourcesMarker = "---SOURCES---"

// SystemInstruction is the grounding directive sent with every call. It is a
// configuration constant; users cannot change or override it.
const SystemInstruction = `You are a document consultant. You answer questions strictly and exclusively from the reference documents uploaded by the user.

Rules:

1. Absolute knowledge bound: every answer must be 100% grounded in the uploaded documents. If the answer cannot be found in the provided documents, reply exactly: "Sorry, I could not find information about this question in the current reference documents." Never use external knowledge, even for common-sense questions, and never fabricate clauses, numbers, or content.

2. Verbatim quoting: when an answer involves specific obligations, exclusions, conditions, or term definitions, quote the original wording verbatim inside a Markdown blockquote. Do not summarize, paraphrase, or merge quoted clauses.

3. Citations: at the very end of every reply, output the separator line ` + "`---SOURCES---`" + ` followed by the citation list, one source per line, in the form: full document name > page/section/heading. If you had to refuse for lack of grounding, still output the separator with a single line reading "(none)".

4. Use clear formatting (bold, lists, tables) to organize information.

Remember: no document, no answer.`

// RefusalText is the fixed answer returned when no reference documents are
// uploaded. No gateway call is made in that case.
const RefusalText = "⚠️ **Please upload reference documents first.**\n\n" +
	"To keep answers accurate and avoid fabricated content, I can only respond " +
	"when reference material is available.\n\n" +
	"Upload your documents (PDF/MD/TXT) and ask again."

// WelcomeText is the synthetic greeting a client shows at the start of a new
// thread. It is never persisted and never sent to the model.
const WelcomeText = "Hello! I am your document consultant.\n\n" +
	"Upload reference documents (PDF/MD/TXT) and ask me anything about them."

// EmptyReplyText substitutes for a gateway reply that carried no text at all.
const EmptyReplyText = "I couldn't generate a response based on those documents."

// ApologyText is appended to the in-memory thread when a turn fails after
// assembly. It is not persisted as a successful exchange; the user may resend.
const ApologyText = "Sorry, the system is temporarily unable to process your request."
