package chi

// chatPage is the single-page chat UI, dark navy theme.
const chatPage = `<!doctype html>
<html lang="nl">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Apotheek Chatbot</title>
<style>
  :root{
    --bg0:#05070d;
    --bg1:#0b1220;
    --ink:#dbe4ff;
    --muted:#9fb0d0;
    --brand:#2b5cff;
    --accent:#94b0ff;
    --danger:#ff5c5c;
    --ok:#2ee6a8;
  }
  *{box-sizing:border-box}
  body{
    margin:0;
    font-family: ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, Arial, sans-serif;
    color:var(--ink);
    background:
      radial-gradient(1200px 600px at 80% -10%, #0f1a33 0%, transparent 60%),
      linear-gradient(180deg, var(--bg0) 0%, var(--bg1) 60%, #000 100%);
  }
  .wrap{max-width:1000px;margin:0 auto;padding:24px 16px 80px;}
  .header{
    position:sticky;top:0;z-index:10;padding:12px 16px;margin:-24px -16px 16px;
    background:linear-gradient(180deg, rgba(0,0,0,0.65), rgba(0,0,0,0.25));
    backdrop-filter:blur(6px);
    border-bottom:1px solid rgba(255,255,255,0.06);
  }
  .title{display:flex;align-items:center;gap:12px;font-weight:700;letter-spacing:0.3px;}
  .dot{
    width:12px;height:12px;border-radius:50%;
    background:linear-gradient(135deg, var(--brand), var(--ok));
    box-shadow:0 0 18px rgba(43,92,255,0.6);
  }
  .meta{color:var(--muted);font-size:13px;}
  .card{
    background:linear-gradient(180deg, rgba(14,26,58,0.55), rgba(5,7,13,0.5));
    border:1px solid rgba(148,176,255,0.12);
    border-radius:16px;
    box-shadow:0 10px 30px rgba(0,0,0,0.35);
    padding:16px;margin-bottom:16px;
  }
  form.ask{display:flex;gap:8px;}
  input[type=text]{
    flex:1;padding:12px 14px;border-radius:12px;border:1px solid rgba(148,176,255,0.2);
    background:rgba(5,7,13,0.6);color:var(--ink);font-size:15px;
  }
  button{
    padding:12px 18px;border-radius:12px;border:0;cursor:pointer;
    background:var(--brand);color:#fff;font-weight:600;
  }
  a.clear{color:var(--muted);font-size:13px;}
  .q{color:var(--accent);font-weight:600;margin-bottom:6px;}
  .a{white-space:pre-wrap;line-height:1.5;}
  .err{color:var(--danger);}
  .sources{margin-top:10px;color:var(--muted);font-size:13px;}
  .sources a{color:var(--accent);}
  .footer{color:var(--muted);font-size:12px;text-align:center;margin-top:24px;}
</style>
</head>
<body>
  <div class="wrap">
    <div class="header">
      <div class="title"><span class="dot"></span> Apotheek Chatbot</div>
      <div class="meta">Vragen over medicijnen, beantwoord uit apotheek.nl-teksten · model {{.Model}}</div>
    </div>

    <div class="card">
      <form class="ask" method="post" action="/chat">
        <input type="text" name="question" placeholder="Bijv. Hoeveel paracetamol mag ik per dag?" autofocus>
        <button type="submit">Vraag</button>
      </form>
      <p><a class="clear" href="/clear">Geschiedenis wissen</a></p>
    </div>

    {{range .Turns}}
    <div class="card">
      <div class="q">{{.Question}}</div>
      {{if .Err}}
        <div class="a err">{{.Err}}</div>
      {{else}}
        <div class="a">{{.Answer}}</div>
        {{if .Sources}}
        <div class="sources">
          Bronnen:
          <ul>
          {{range .Sources}}
            <li>{{.Place}}{{if .URL}} &middot; <a href="{{.URL}}" target="_blank" rel="noopener">link</a>{{end}}</li>
          {{end}}
          </ul>
        </div>
        {{end}}
      {{end}}
    </div>
    {{end}}

    <div class="footer">Antwoorden zijn informatief, geen medisch advies.</div>
  </div>
</body>
</html>
`
